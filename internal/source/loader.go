// Package source reads line-delimited JSON batch files for each origin.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"articlebuild/internal/logger"
	"articlebuild/internal/models"
)

var nullLiteral = []byte("null")

// Stats describes what a single Load call read.
type Stats struct {
	Origin       string
	Missing      bool
	Files        int
	Lines        int
	Records      int
	SkippedLines int
}

// Loader reads batch files from origin directories.
type Loader struct {
	pattern string
	log     *logger.Logger
}

// NewLoader creates a loader matching batch files against pattern (e.g. "*.jsonl").
func NewLoader(pattern string, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Discard()
	}

	return &Loader{
		pattern: pattern,
		log:     log,
	}
}

// Load returns every record found in dir. A missing directory yields no
// records and no error. Files are read in lexicographic order by name.
func (l *Loader) Load(dir string) ([]models.RawRecord, Stats, error) {
	stats := Stats{Origin: filepath.Base(dir)}

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		stats.Missing = true
		l.log.Debug("origin directory missing", "dir", dir)

		return nil, stats, nil
	}

	if err != nil {
		return nil, stats, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	files, err := l.batchFiles(dir)
	if err != nil {
		return nil, stats, err
	}

	var records []models.RawRecord

	for _, path := range files {
		batch, lines, skipped, err := readBatch(path)
		if err != nil {
			return nil, stats, err
		}

		if skipped > 0 {
			l.log.Debug("skipped malformed lines", "file", path, "count", skipped)
		}

		stats.Files++
		stats.Lines += lines
		stats.SkippedLines += skipped

		records = append(records, batch...)
	}

	stats.Records = len(records)

	return records, stats, nil
}

// batchFiles lists the regular files in dir whose names match the pattern, sorted.
func (l *Loader) batchFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ok, matchErr := filepath.Match(l.pattern, entry.Name())
		if matchErr != nil {
			return nil, fmt.Errorf("invalid batch pattern %q: %w", l.pattern, matchErr)
		}

		if ok {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}

	return paths, nil
}

// readBatch decodes one record per non-blank line of the file at path.
// It returns the records, the number of non-blank lines and the number of
// lines that did not decode as a JSON object.
func readBatch(path string) ([]models.RawRecord, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	records, lines, skipped, err := DecodeLines(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return records, lines, skipped, nil
}

// DecodeLines decodes a line-delimited JSON stream. Blank lines are ignored
// and lines that are not a JSON object are skipped. A field holding the wrong
// JSON type for the record (a numeric url, say) also makes the line malformed.
func DecodeLines(r io.Reader) ([]models.RawRecord, int, int, error) {
	var (
		records []models.RawRecord
		lines   int
		skipped int
	)

	br := bufio.NewReader(r)

	for {
		line, readErr := br.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, lines, skipped, readErr
		}

		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			lines++

			var rec models.RawRecord
			if bytes.Equal(line, nullLiteral) || json.Unmarshal(line, &rec) != nil {
				skipped++
			} else {
				records = append(records, rec)
			}
		}

		if readErr != nil {
			break
		}
	}

	return records, lines, skipped, nil
}
