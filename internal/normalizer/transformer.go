package normalizer

import (
	"bytes"
	"encoding/json"
	"strings"

	"articlebuild/internal/models"
)

// Transformer maps raw records onto the canonical article shape.
type Transformer struct {
	defaultSource json.RawMessage
}

// NewTransformer creates a transformer. When defaultSource is empty, records
// without a source keep a null source.
func NewTransformer(defaultSource string) *Transformer {
	t := &Transformer{}

	if defaultSource != "" {
		// Marshalling a string cannot fail.
		t.defaultSource, _ = json.Marshal(defaultSource)
	}

	return t
}

// Transform converts a raw record into an article. Title and content are
// trimmed; every other field keeps its JSON value.
func (t *Transformer) Transform(raw *models.RawRecord) *models.Article {
	article := &models.Article{
		URL:           raw.URL,
		Title:         trimmed(raw.Title),
		Content:       trimmed(raw.Content),
		Source:        passthrough(raw.Source),
		PublishedDate: passthrough(raw.PublishedDate),
		League:        passthrough(raw.League),
	}

	if raw.Source == nil {
		article.Source = t.defaultSource
	}

	return article
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}

	return strings.TrimSpace(*s)
}

// passthrough copies a raw JSON value, keeping nil for absent fields.
// Escaped string contents are rewritten in literal form; numbers, key order
// and structure are left as they were.
func passthrough(v json.RawMessage) json.RawMessage {
	if len(v) == 0 {
		return nil
	}

	out := make(json.RawMessage, 0, len(v))

	for i := 0; i < len(v); {
		if v[i] != '"' {
			out = append(out, v[i])
			i++

			continue
		}

		end := stringEnd(v, i)

		lit, err := literalString(v[i:end])
		if err != nil {
			out = append(out, v[i:end]...)
		} else {
			out = append(out, lit...)
		}

		i = end
	}

	return out
}

// stringEnd returns the index just past the string literal starting at start.
func stringEnd(v []byte, start int) int {
	for i := start + 1; i < len(v); i++ {
		switch v[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}

	return len(v)
}

// literalString re-encodes a JSON string literal without escaping non-ASCII
// or HTML characters.
func literalString(quoted []byte) ([]byte, error) {
	var s string
	if err := json.Unmarshal(quoted, &s); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
