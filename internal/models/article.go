// Package models defines data structures shared by the loader, normalizer and writer.
package models

import "encoding/json"

// RawRecord is one line of an origin batch file. Every field is optional;
// keys other than the ones below are ignored on decode.
//
// Source, PublishedDate and League are kept as raw JSON so they can be
// written back out exactly as the origin supplied them.
type RawRecord struct {
	URL           *string         `json:"url"`
	Title         *string         `json:"title"`
	Content       *string         `json:"content"`
	Source        json.RawMessage `json:"source"`
	PublishedDate json.RawMessage `json:"published_date"`
	League        json.RawMessage `json:"league"`
}

// Article is the canonical record written to the consolidated output.
// Nil pointers and empty raw values are encoded as JSON null.
type Article struct {
	URL           *string         `json:"url"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	Source        json.RawMessage `json:"source"`
	PublishedDate json.RawMessage `json:"published_date"`
	League        json.RawMessage `json:"league"`
}

// Key returns the deduplication key of the article.
func (a *Article) Key() string {
	if a.URL == nil {
		return ""
	}

	return *a.URL
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
