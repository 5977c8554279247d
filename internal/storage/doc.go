// Package storage writes the run artifacts: the identifier list, the
// per-event URL list, the calendar document, and a static index page.
//
// The pipeline talks to the Sink interface rather than the filesystem
// directly; Dir is the filesystem implementation, keeping every artifact
// under a single output directory such as public/.
package storage
