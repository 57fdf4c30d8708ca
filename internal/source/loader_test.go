package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeBatch(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write batch: %v", err)
	}
}

func urls(t *testing.T, dir string) []string {
	t.Helper()

	records, _, err := NewLoader("*.jsonl", nil).Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var got []string
	for _, rec := range records {
		if rec.URL == nil {
			got = append(got, "<nil>")
			continue
		}

		got = append(got, *rec.URL)
	}

	return got
}

func TestLoad_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "espn")

	records, stats, err := NewLoader("*.jsonl", nil).Load(dir)
	if err != nil {
		t.Fatalf("Load returned error for missing dir: %v", err)
	}

	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}

	if !stats.Missing || stats.Origin != "espn" {
		t.Errorf("stats = %+v, want Missing origin espn", stats)
	}
}

func TestLoad_PathIsFile(t *testing.T) {
	root := t.TempDir()
	writeBatch(t, root, "bbc", "not a directory")

	records, stats, err := NewLoader("*.jsonl", nil).Load(filepath.Join(root, "bbc"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(records) != 0 || !stats.Missing {
		t.Errorf("records = %d, stats = %+v", len(records), stats)
	}
}

func TestLoad_SortedFileOrder(t *testing.T) {
	dir := t.TempDir()
	writeBatch(t, dir, "b.jsonl", `{"url":"b1"}`+"\n")
	writeBatch(t, dir, "a.jsonl", `{"url":"a1"}`+"\n"+`{"url":"a2"}`+"\n")
	writeBatch(t, dir, "c.jsonl", `{"url":"c1"}`)

	want := []string{"a1", "a2", "b1", "c1"}
	if diff := cmp.Diff(want, urls(t, dir)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_IgnoresNonMatchingEntries(t *testing.T) {
	dir := t.TempDir()
	writeBatch(t, dir, "keep.jsonl", `{"url":"keep"}`)
	writeBatch(t, dir, "notes.txt", `{"url":"txt"}`)
	writeBatch(t, filepath.Join(dir, "nested.jsonl"), "inner.jsonl", `{"url":"nested"}`)

	want := []string{"keep"}
	if diff := cmp.Diff(want, urls(t, dir)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MalformedLineTolerance(t *testing.T) {
	dir := t.TempDir()
	writeBatch(t, dir, "batch.jsonl", strings.Join([]string{
		`{"url":"first","title":"One"}`,
		`{"url": broken`,
		`{"url":"second","title":"Two"}`,
	}, "\n"))

	records, stats, err := NewLoader("*.jsonl", nil).Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if *records[0].URL != "first" || *records[1].URL != "second" {
		t.Errorf("records out of order: %s, %s", *records[0].URL, *records[1].URL)
	}

	want := Stats{Origin: filepath.Base(dir), Files: 1, Lines: 3, Records: 2, SkippedLines: 1}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLines(t *testing.T) {
	input := strings.Join([]string{
		"",
		`   {"url":"a","content":"  body  ","league":"EPL","extra":1}   `,
		"   ",
		`[1,2,3]`,
		`"just a string"`,
		`null`,
		`{"url":42}`,
		`{}`,
		`{"url":"b"}`,
	}, "\n")

	records, lines, skipped, err := DecodeLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLines failed: %v", err)
	}

	if lines != 7 {
		t.Errorf("lines = %d, want 7", lines)
	}

	if skipped != 4 {
		t.Errorf("skipped = %d, want 4", skipped)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	first := records[0]
	if *first.URL != "a" || *first.Content != "  body  " || string(first.League) != `"EPL"` {
		t.Errorf("first record decoded wrong: %+v", first)
	}

	if records[1].URL != nil || records[1].Title != nil {
		t.Errorf("empty object should decode to empty record: %+v", records[1])
	}
}

func TestDecodeLines_LongLine(t *testing.T) {
	body := strings.Repeat("x", 200_000)
	input := `{"url":"long","content":"` + body + `"}` + "\n"

	records, _, skipped, err := DecodeLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLines failed: %v", err)
	}

	if skipped != 0 || len(records) != 1 || len(*records[0].Content) != len(body) {
		t.Errorf("long line not decoded: skipped=%d records=%d", skipped, len(records))
	}
}

func TestLoad_UnreadableBatchIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		target  func(t *testing.T) string
		wantErr string
	}{
		{
			name: "dangling link",
			target: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "gone.jsonl")
			},
			wantErr: "failed to open batch file",
		},
		{
			name: "link to directory",
			target: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr: "failed to read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeBatch(t, dir, "a.jsonl", `{"url":"ok"}`)

			if err := os.Symlink(tt.target(t), filepath.Join(dir, "b.jsonl")); err != nil {
				t.Skipf("symlinks unavailable: %v", err)
			}

			records, _, err := NewLoader("*.jsonl", nil).Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want %q", err, tt.wantErr)
			}

			if records != nil {
				t.Errorf("records = %d, want none on error", len(records))
			}
		})
	}
}
