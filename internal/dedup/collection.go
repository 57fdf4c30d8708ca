// Package dedup collapses articles to one per URL.
package dedup

import "articlebuild/internal/models"

// Collection is an insertion-ordered set of articles keyed by URL.
// It is built once by Deduplicate and not modified afterwards.
type Collection struct {
	articles   []models.Article
	seen       map[string]struct{}
	duplicates int
}

// Deduplicate keeps the first article seen for each URL. URLs are compared
// byte for byte; no normalization is applied.
func Deduplicate(articles []models.Article) *Collection {
	c := &Collection{
		articles: make([]models.Article, 0, len(articles)),
		seen:     make(map[string]struct{}, len(articles)),
	}

	for _, article := range articles {
		key := article.Key()
		if _, dup := c.seen[key]; dup {
			c.duplicates++
			continue
		}

		c.seen[key] = struct{}{}
		c.articles = append(c.articles, article)
	}

	return c
}

// Articles returns the articles in first-seen order. The slice is a copy.
func (c *Collection) Articles() []models.Article {
	return append([]models.Article(nil), c.articles...)
}

// Len returns the number of unique articles.
func (c *Collection) Len() int {
	return len(c.articles)
}

// Duplicates returns how many articles were dropped as repeats.
func (c *Collection) Duplicates() int {
	return c.duplicates
}
