// Package patch runs the fetch → parse → synthesize → merge pipeline for
// one manifest. It never writes files; callers decide what to do with the
// result.
package patch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/wren/pkg/logger"
	"github.com/simonhull/firebird-suite/wren/pkg/manifest"
	"github.com/simonhull/firebird-suite/wren/pkg/options"
	"github.com/simonhull/firebird-suite/wren/pkg/readme"
)

// Patcher holds everything a run needs besides the manifest bytes.
type Patcher struct {
	Source     readme.Source
	Heading    string
	Normalizer options.Normalizer
	Scope      string
	Logger     logger.Logger
}

// Entry is the outcome for one table row.
type Entry struct {
	Row        options.Row
	ID         string
	Descriptor options.Descriptor
	Created    bool
	Changed    bool
}

// Result is a planned manifest rewrite.
type Result struct {
	Before  []byte
	After   []byte
	Entries []Entry
}

// Changed reports whether writing After would alter the file.
func (r *Result) Changed() bool {
	return string(r.Before) != string(r.After)
}

// Counts returns how many entries were added and updated.
func (r *Result) Counts() (added, updated int) {
	for _, e := range r.Entries {
		switch {
		case e.Created:
			added++
		case e.Changed:
			updated++
		}
	}
	return added, updated
}

// Summary is a short human description such as "2 added, 5 updated, 20 unchanged".
func (r *Result) Summary() string {
	added, updated := r.Counts()
	unchanged := len(r.Entries) - added - updated
	return fmt.Sprintf("%d added, %d updated, %d unchanged", added, updated, unchanged)
}

func (p *Patcher) log() logger.Logger {
	if p.Logger == nil {
		return logger.NewSilent()
	}
	return p.Logger
}

// Rows fetches the document and parses its option table.
func (p *Patcher) Rows(ctx context.Context) ([]options.Row, error) {
	log := p.log().With(logger.F("source", p.Source.String()))

	doc, err := p.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched document", logger.F("bytes", len(doc)))

	section, err := readme.ExtractSection(string(doc), p.Heading)
	if err != nil {
		if errors.Is(err, readme.ErrSectionNotFound) {
			return nil, withOutlineHint(err, doc, p.Heading)
		}
		return nil, err
	}

	rows, err := options.ParseOptionTable(section)
	if err != nil {
		return nil, fmt.Errorf("parsing option table: %w", err)
	}
	log.Debug("parsed option table", logger.F("rows", len(rows)))
	return rows, nil
}

// Synthesize builds the identifier and descriptor for every row. It stops at
// the first row that cannot be classified.
func (p *Patcher) Synthesize(rows []options.Row) ([]Entry, error) {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		d, err := options.Synthesize(row.RawOptions, row.Description, p.Scope)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", row.Line, row.SwitchName, err)
		}
		entries = append(entries, Entry{
			Row:        row,
			ID:         p.Normalizer.Identifier(row.SwitchName),
			Descriptor: d,
		})
	}
	return entries, nil
}

// Plan computes the new manifest content for the given current content.
func (p *Patcher) Plan(ctx context.Context, current []byte) (*Result, error) {
	rows, err := p.Rows(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := p.Synthesize(rows)
	if err != nil {
		return nil, err
	}

	doc, err := manifest.Parse(current)
	if err != nil {
		return nil, err
	}

	log := p.log()
	for i := range entries {
		change, err := doc.Merge(entries[i].ID, entries[i].Descriptor.Fields())
		if err != nil {
			return nil, err
		}
		entries[i].Created = change.Created
		entries[i].Changed = change.Changed
		log.Debug("merged option",
			logger.F("id", entries[i].ID),
			logger.F("type", entries[i].Descriptor.Type),
			logger.F("created", change.Created),
			logger.F("changed", change.Changed),
		)
	}

	after, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	return &Result{Before: current, After: after, Entries: entries}, nil
}

// withOutlineHint lists headings resembling the one we looked for, since a
// missing section almost always means it was renamed upstream.
func withOutlineHint(err error, doc []byte, heading string) error {
	similar := readme.Similar(readme.Outline(doc), heading)
	if len(similar) == 0 {
		return err
	}
	names := make([]string, len(similar))
	for i, h := range similar {
		names[i] = fmt.Sprintf("%q", h.Markdown())
	}
	return fmt.Errorf("%w (similar headings: %s)", err, strings.Join(names, ", "))
}
