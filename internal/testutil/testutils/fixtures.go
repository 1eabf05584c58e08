package helpers

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Layout fixtures matching the files a site build loads.
var DefaultLayouts = map[string]string{
	"layout/page.html": "<title>{{ title }} - {{ site_url }}</title><main>{{ content }}</main>\n",
	"layout/post.html": "<article><h1>{{ title }}</h1><time>{{ date }}</time>{{ content }}</article>",
	"layout/list.html": "<ul>{{ content }}</ul>",
	"layout/item.html": "<li><a href=\"{{ base_path }}/{{ category }}/{{ slug }}/\">{{ title }}</a> {{ date }}</li>",
	"layout/feed.xml":  "<rss><channel><title>{{ title }}</title>{{ content }}</channel></rss>\n",
	"layout/item.xml":  "<item><title>{{ title }}</title><link>{{ site_url }}/{{ category }}/{{ slug }}/</link></item>",
}

// WriteTree creates files under root, keyed by slash-separated relative path.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

// WriteFileAt writes a file and sets its modification time.
func WriteFileAt(t *testing.T, path, body string, mtime time.Time) {
	t.Helper()
	WriteTree(t, filepath.Dir(path), map[string]string{filepath.Base(path): body})
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Failed to set mtime on %s: %v", path, err)
	}
}
