// Package store persists the consolidated article collection.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"articlebuild/internal/dedup"
	"articlebuild/internal/logger"
	"articlebuild/internal/models"
	"articlebuild/pkg/digest"
)

// Result describes a completed write.
type Result struct {
	Path   string
	Count  int
	Bytes  int
	Digest string
}

// Writer serializes a collection to a single JSON document.
type Writer struct {
	indent int
	log    *logger.Logger
}

// NewWriter creates a writer. An indent of zero writes compact JSON.
func NewWriter(indent int, log *logger.Logger) *Writer {
	if log == nil {
		log = logger.Discard()
	}

	return &Writer{
		indent: indent,
		log:    log,
	}
}

// Encode renders articles as a JSON array. Non-ASCII (including the line and
// paragraph separators) and HTML characters are written literally. There is
// no trailing newline.
func (w *Writer) Encode(articles []models.Article) ([]byte, error) {
	if articles == nil {
		articles = []models.Article{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if w.indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", w.indent))
	}

	if err := enc.Encode(articles); err != nil {
		return nil, fmt.Errorf("failed to encode articles: %w", err)
	}

	return literalSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// literalSeparators replaces the \u2028 and \u2029 escapes encoding/json
// always emits with the characters themselves.
func literalSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))

	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}

		if esc := data[i+1:]; len(esc) >= 5 && esc[0] == 'u' {
			switch string(esc[1:5]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5

				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5

				continue
			}
		}

		// Copy the escape pair so an escaped backslash is not read as the
		// start of a new escape.
		out = append(out, data[i], data[i+1])
		i++
	}

	return out
}

// Write replaces the file at path with the collection, creating parent
// directories as needed.
func (w *Writer) Write(path string, c *dedup.Collection) (*Result, error) {
	data, err := w.Encode(c.Articles())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}

	sum := digest.Bytes(data)
	if err := digest.Verify(path, sum); err != nil {
		return nil, fmt.Errorf("output check failed: %w", err)
	}

	res := &Result{
		Path:   path,
		Count:  c.Len(),
		Bytes:  len(data),
		Digest: sum,
	}

	w.log.Debug("wrote articles", "path", path, "count", res.Count, "bytes", res.Bytes, "sha256", res.Digest)

	return res, nil
}
