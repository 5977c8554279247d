package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testFiles = Files{
	IDs:      "event_ids.txt",
	URLs:     "event_id_urls.txt",
	Calendar: "streamwood_biking.ics",
	Index:    "index.html",
}

func newTestDir(t *testing.T) (*Dir, string) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "storage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	d, err := New(tmpDir, testFiles)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return d, tmpDir
}

func TestNew_CreatesDirectory(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "storage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	nested := filepath.Join(tmpDir, "out", "public")
	d, err := New(nested, testFiles)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	info, err := os.Stat(nested)
	if err != nil || !info.IsDir() {
		t.Fatalf("output directory not created: %v", err)
	}
	if d.Root() != nested {
		t.Errorf("Root() = %q, want %q", d.Root(), nested)
	}
}

func TestDir_WriteEventIDs(t *testing.T) {
	d, tmpDir := newTestDir(t)

	if err := d.WriteEventIDs([]string{"111", "222", "333"}); err != nil {
		t.Fatalf("WriteEventIDs() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, testFiles.IDs))
	if err != nil {
		t.Fatalf("reading identifier list: %v", err)
	}
	if string(data) != "111\n222\n333\n" {
		t.Errorf("identifier list = %q, want one identifier per line", string(data))
	}
}

func TestDir_AppendEventURLAfterReset(t *testing.T) {
	d, tmpDir := newTestDir(t)
	path := filepath.Join(tmpDir, testFiles.URLs)

	// Resetting with no file present must be a no-op.
	if err := d.ResetEventURLs(); err != nil {
		t.Fatalf("ResetEventURLs() on missing file: %v", err)
	}

	urls := []string{
		"https://m.facebook.com/events/111",
		"https://m.facebook.com/events/222",
	}
	for _, u := range urls {
		if err := d.AppendEventURL(u); err != nil {
			t.Fatalf("AppendEventURL(%q) error: %v", u, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading url list: %v", err)
	}
	want := urls[0] + "\n" + urls[1] + "\n"
	if string(data) != want {
		t.Errorf("url list = %q, want %q", string(data), want)
	}

	// A reset drops the accumulated list entirely.
	if err := d.ResetEventURLs(); err != nil {
		t.Fatalf("ResetEventURLs() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("url list still present after reset: %v", err)
	}

	if err := d.AppendEventURL("https://m.facebook.com/events/333"); err != nil {
		t.Fatalf("AppendEventURL() after reset: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading url list: %v", err)
	}
	if string(data) != "https://m.facebook.com/events/333\n" {
		t.Errorf("url list after reset = %q, want only the new url", string(data))
	}
}

func TestDir_WriteCalendarOverwrites(t *testing.T) {
	d, tmpDir := newTestDir(t)
	path := filepath.Join(tmpDir, testFiles.Calendar)

	first := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n" + strings.Repeat("X-PAD:filler\r\n", 10)
	if err := d.WriteCalendar(first); err != nil {
		t.Fatalf("WriteCalendar() error: %v", err)
	}

	second := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"
	if err := d.WriteCalendar(second); err != nil {
		t.Fatalf("WriteCalendar() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading calendar: %v", err)
	}
	if string(data) != second {
		t.Errorf("calendar = %q, want the second write only", string(data))
	}
}

func TestDir_WriteIndex(t *testing.T) {
	d, tmpDir := newTestDir(t)

	if err := d.WriteIndex(); err != nil {
		t.Fatalf("WriteIndex() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, testFiles.Index))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}

	for _, want := range []string{testFiles.Calendar, testFiles.URLs, testFiles.IDs} {
		if !strings.Contains(string(data), want) {
			t.Errorf("index missing link to %q", want)
		}
	}
}
