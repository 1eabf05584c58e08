// Package content loads source files and derives their metadata from the filesystem.
//
// Metadata is path-derived rather than declared: the parent directory names the
// category, the file name (up to its first dot) is the slug, and the title is the
// slug with hyphens turned into spaces and each word capitalised. Dates come from
// the file's modification time.
package content

// Date layouts used for the date and full_date placeholders.
const (
	DateLayout     = "2006-01-02"
	FullDateLayout = "2006-01-02 15:04:05"
)

// Placeholder keys contributed by an Item.
const (
	KeyCategory = "category"
	KeySlug     = "slug"
	KeyTitle    = "title"
	KeyContent  = "content"
	KeyDate     = "date"
	KeyFullDate = "full_date"
)

// Item is one source content file after metadata extraction.
type Item struct {
	Category string
	Slug     string
	Title    string
	Content  string
	Date     string
	FullDate string

	// SourcePath is the path the item was read from. It is not a placeholder.
	SourcePath string
}

// Params returns the item's placeholder values.
func (i *Item) Params() map[string]any {
	return map[string]any{
		KeyCategory: i.Category,
		KeySlug:     i.Slug,
		KeyTitle:    i.Title,
		KeyContent:  i.Content,
		KeyDate:     i.Date,
		KeyFullDate: i.FullDate,
	}
}
