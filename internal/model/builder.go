package model

import (
	"fmt"
	"sort"
	"time"

	pep440 "github.com/aquasecurity/go-pep440-version"
	"go.uber.org/zap"

	"github.com/goliatone/go-releasecycle/pkg/dataset"
)

// Builder derives VersionRecords from a validated document.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Rules != nil {
		opts.Rules = options.Rules
	}
	if options.Logger != nil {
		opts.Logger = options.Logger
	}
	return &Builder{opts: opts}
}

// Build enriches every entry of doc and returns them sorted newest first.
// today decides the future flags; only its calendar date is used.
func (b *Builder) Build(doc dataset.Document, today time.Time) (Dataset, error) {
	if today.IsZero() {
		return Dataset{}, fmt.Errorf("model: today is required")
	}
	today = DateOnly(today)

	entries := doc.Entries()
	records := make([]VersionRecord, 0, len(entries))
	for _, entry := range entries {
		rec, err := b.derive(entry, today)
		if err != nil {
			return Dataset{}, fmt.Errorf("version %s: %w", entry.Identifier, err)
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[j].SortKey.LessThan(records[i].SortKey)
	})

	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if !cur.SortKey.LessThan(prev.SortKey) {
			return Dataset{}, fmt.Errorf("%w: %q and %q", ErrDuplicateIdentifier, prev.Identifier, cur.Identifier)
		}
	}

	return Dataset{Records: records, Today: today}, nil
}

func (b *Builder) derive(entry dataset.Entry, today time.Time) (VersionRecord, error) {
	raw := entry.Record

	sortKey, err := pep440.Parse(entry.Identifier)
	if err != nil {
		return VersionRecord{}, fmt.Errorf("%w: %q: %v", ErrInvalidIdentifier, entry.Identifier, err)
	}

	status, err := ParseStatus(raw.Status)
	if err != nil {
		return VersionRecord{}, err
	}

	first, err := ParseDate(raw.FirstRelease)
	if err != nil {
		return VersionRecord{}, fmt.Errorf("first release: %w", err)
	}
	eol, err := ParseDate(raw.EndOfLife)
	if err != nil {
		return VersionRecord{}, fmt.Errorf("end of life: %w", err)
	}
	if eol.Before(first) {
		return VersionRecord{}, fmt.Errorf("%w: %s < %s", ErrDateOrder, raw.EndOfLife, raw.FirstRelease)
	}

	securityStart, err := b.opts.Rules.SecurityStart(entry.Identifier, first)
	if err != nil {
		return VersionRecord{}, err
	}

	rec := VersionRecord{
		Identifier:         entry.Identifier,
		Branch:             raw.Branch,
		Status:             status,
		PEP:                raw.PEP,
		ReleaseManager:     raw.ReleaseManager,
		FirstRelease:       raw.FirstRelease,
		EndOfLife:          raw.EndOfLife,
		FirstReleaseDate:   first,
		EndOfLifeDate:      eol,
		SecurityStartDate:  securityStart,
		FirstReleaseFuture: first.After(today),
		EndOfLifeFuture:    eol.After(today),
		SortKey:            sortKey,
	}

	b.opts.Logger.Debug("derived version record",
		zap.String("version", rec.Identifier),
		zap.String("status", rec.Status.String()),
		zap.String("security_start", FormatDate(rec.SecurityStartDate)),
	)
	return rec, nil
}
