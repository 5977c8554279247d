package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Files names the artifacts written under the output directory.
type Files struct {
	IDs      string
	URLs     string
	Calendar string
	Index    string
}

// Sink is the output port for run artifacts. The pipeline writes through it
// so tests can substitute an in-memory implementation.
type Sink interface {
	// WriteEventIDs overwrites the identifier list, one identifier per line
	WriteEventIDs(ids []string) error
	// ResetEventURLs removes the URL list so a fresh run starts empty
	ResetEventURLs() error
	// AppendEventURL adds one URL line to the URL list
	AppendEventURL(url string) error
	// WriteCalendar overwrites the calendar document
	WriteCalendar(content string) error
	// WriteIndex overwrites the static index referencing the other artifacts
	WriteIndex() error
}

// Dir is the filesystem Sink, writing every artifact under one directory.
type Dir struct {
	root  string
	files Files
}

// New creates a Dir rooted at dir, expanding a leading ~ and creating the
// directory if needed.
func New(dir string, files Files) (*Dir, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Dir{root: dir, files: files}, nil
}

// Root returns the resolved output directory.
func (d *Dir) Root() string {
	return d.root
}

// WriteEventIDs overwrites the identifier list, one identifier per line.
func (d *Dir) WriteEventIDs(ids []string) error {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteString("\n")
	}

	if err := os.WriteFile(filepath.Join(d.root, d.files.IDs), []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing identifier list: %w", err)
	}
	return nil
}

// ResetEventURLs removes the URL list; a missing file is not an error.
func (d *Dir) ResetEventURLs() error {
	err := os.Remove(filepath.Join(d.root, d.files.URLs))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("resetting url list: %w", err)
	}
	return nil
}

// AppendEventURL adds one URL line to the URL list, creating it on first use.
func (d *Dir) AppendEventURL(url string) error {
	f, err := os.OpenFile(filepath.Join(d.root, d.files.URLs), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening url list: %w", err)
	}

	_, err = f.WriteString(url + "\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("appending url: %w", err)
	}
	return nil
}

// WriteCalendar overwrites the calendar document, creating any missing parent
// directories.
func (d *Dir) WriteCalendar(content string) error {
	path := filepath.Join(d.root, d.files.Calendar)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating calendar directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// WriteIndex overwrites the static index page linking the other artifacts.
func (d *Dir) WriteIndex() error {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body>\n")
	b.WriteString("<h1>Streamwood Biking Calendar</h1>\n")
	fmt.Fprintf(&b, "<a href=%q>calendar</a><br>\n", d.files.Calendar)
	fmt.Fprintf(&b, "<a href=%q>event urls</a><br>\n", d.files.URLs)
	fmt.Fprintf(&b, "<a href=%q>event ids</a><br>\n", d.files.IDs)
	b.WriteString("</body></html>\n")

	if err := os.WriteFile(filepath.Join(d.root, d.files.Index), []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}
