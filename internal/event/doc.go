// Package event defines the record model shared by the extraction pipeline.
//
// A Record captures one event's title, description, URL, start/end time, and
// location as mined from a single page. Timestamps remember whether their
// source text carried a zone offset, so naive times can later be fixed into
// the configured default zone without touching their wall-clock values. The
// package also provides the tolerant date parsing used against both ISO
// script payloads and human-readable element text.
package event
