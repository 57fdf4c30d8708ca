// Package normalizer coerces raw origin records into canonical articles and
// filters out the ones that are not worth keeping.
package normalizer

import (
	"errors"

	"articlebuild/internal/logger"
	"articlebuild/internal/models"
)

// Rejections counts dropped records by reason.
type Rejections struct {
	MissingURL      int
	EmptyContent    int
	ContentTooShort int
}

// Total returns the number of rejected records.
func (r Rejections) Total() int {
	return r.MissingURL + r.EmptyContent + r.ContentTooShort
}

// Processor normalizes and filters raw records.
type Processor struct {
	validator   *Validator
	transformer *Transformer
	log         *logger.Logger
}

// NewProcessor creates a new processor instance.
func NewProcessor(defaultSource string, minContentLength int, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Discard()
	}

	return &Processor{
		validator:   NewValidator(minContentLength),
		transformer: NewTransformer(defaultSource),
		log:         log,
	}
}

// Process normalizes one raw record and validates the result.
func (p *Processor) Process(raw *models.RawRecord) (*models.Article, error) {
	article := p.transformer.Transform(raw)

	if err := p.validator.Validate(article); err != nil {
		return nil, err
	}

	return article, nil
}

// ProcessAll normalizes records in order and keeps the valid ones.
func (p *Processor) ProcessAll(records []models.RawRecord) ([]models.Article, Rejections) {
	var (
		kept     = make([]models.Article, 0, len(records))
		rejected Rejections
	)

	for i := range records {
		article, err := p.Process(&records[i])
		if err == nil {
			kept = append(kept, *article)
			continue
		}

		switch {
		case errors.Is(err, ErrMissingURL):
			rejected.MissingURL++
		case errors.Is(err, ErrEmptyContent):
			rejected.EmptyContent++
		case errors.Is(err, ErrContentTooShort):
			rejected.ContentTooShort++
		}
	}

	p.log.Debug("normalized records",
		"input", len(records),
		"kept", len(kept),
		"missing_url", rejected.MissingURL,
		"empty_content", rejected.EmptyContent,
		"too_short", rejected.ContentTooShort,
	)

	return kept, rejected
}
