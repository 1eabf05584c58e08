// Package site drives a full build: it resets the output tree, loads and composes the
// layouts, renders pages and posts, and writes the list pages and the feed.
//
// The build is sequential. Each stage either completes or aborts the whole build;
// files written by earlier stages are left in place.
package site
