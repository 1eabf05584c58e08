// Package watch rebuilds a site when its inputs change.
//
// Filesystem events are debounced into rebuild requests, and an optional gocron job
// adds a request on a fixed interval. A single worker runs the builds, so at most
// one build runs and one more is pending at any time. Every rebuild is a full build.
package watch
