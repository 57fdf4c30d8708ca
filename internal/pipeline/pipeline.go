// Package pipeline runs the load, normalize, deduplicate and write stages
// once, in order.
package pipeline

import (
	"fmt"
	"io"

	"articlebuild/internal/config"
	"articlebuild/internal/dedup"
	"articlebuild/internal/logger"
	"articlebuild/internal/models"
	"articlebuild/internal/normalizer"
	"articlebuild/internal/report"
	"articlebuild/internal/source"
	"articlebuild/internal/store"
)

// Result summarizes one build.
type Result struct {
	Origins    []source.Stats
	Loaded     int
	Rejected   normalizer.Rejections
	Duplicates int
	Saved      int
	Path       string
	Digest     string
}

// Builder consolidates origin batches into one article file.
type Builder struct {
	cfg       *config.Config
	loader    *source.Loader
	processor *normalizer.Processor
	writer    *store.Writer
	log       *logger.Logger
}

// NewBuilder creates a builder from cfg.
func NewBuilder(cfg *config.Config, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.Discard()
	}

	return &Builder{
		cfg:       cfg,
		loader:    source.NewLoader(cfg.Build.Pattern, log.With("stage", "load")),
		processor: normalizer.NewProcessor(cfg.Build.DefaultSource, cfg.Build.MinContentLength, log.With("stage", "normalize")),
		writer:    store.NewWriter(cfg.Output.Indent, log.With("stage", "write")),
		log:       log,
	}
}

// Collect loads every origin and returns the deduplicated collection.
// Nothing is written.
func (b *Builder) Collect() (*dedup.Collection, *Result, error) {
	res := &Result{}

	var raw []models.RawRecord

	for _, dir := range b.cfg.OriginDirs() {
		records, stats, err := b.loader.Load(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load origin %s: %w", stats.Origin, err)
		}

		b.log.Debug("loaded origin",
			"origin", stats.Origin,
			"missing", stats.Missing,
			"files", stats.Files,
			"records", stats.Records,
			"skipped_lines", stats.SkippedLines,
		)

		res.Origins = append(res.Origins, stats)
		raw = append(raw, records...)
	}

	res.Loaded = len(raw)

	articles, rejected := b.processor.ProcessAll(raw)
	res.Rejected = rejected

	collection := dedup.Deduplicate(articles)
	res.Duplicates = collection.Duplicates()
	res.Saved = collection.Len()

	b.log.Debug("deduplicated articles", "unique", collection.Len(), "duplicates", collection.Duplicates())

	return collection, res, nil
}

// Run collects every origin and writes the consolidated file. All reads
// finish before the single write.
func (b *Builder) Run() (*Result, error) {
	collection, res, err := b.Collect()
	if err != nil {
		return nil, err
	}

	written, err := b.writer.Write(b.cfg.Build.Output, collection)
	if err != nil {
		return nil, err
	}

	res.Path = written.Path
	res.Digest = written.Digest

	return res, nil
}

// WriteStats renders per-origin counts as a table.
func (r *Result) WriteStats(w io.Writer) error {
	table := report.NewTable("origin", "files", "lines", "records", "skipped")

	for _, o := range r.Origins {
		name := o.Origin
		if o.Missing {
			name += " (missing)"
		}

		table.AddCounts(name, o.Files, o.Lines, o.Records, o.SkippedLines)
	}

	if err := table.Render(w); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "loaded %d, rejected %d (no url %d, no content %d, too short %d), duplicates %d, saved %d\n",
		r.Loaded,
		r.Rejected.Total(),
		r.Rejected.MissingURL,
		r.Rejected.EmptyContent,
		r.Rejected.ContentTooShort,
		r.Duplicates,
		r.Saved,
	)

	return err
}
