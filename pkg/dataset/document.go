package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// JSON field names accepted for each record. Aliases are folded into the
// canonical name before validation.
const (
	FieldBranch         = "branch"
	FieldPEP            = "pep"
	FieldStatus         = "status"
	FieldFirstRelease   = "first_release"
	FieldEndOfLife      = "end_of_life"
	FieldReleaseManager = "release_manager"
)

var fieldAliases = map[string]string{
	"release_date": FieldFirstRelease,
	"eol":          FieldEndOfLife,
}

// Record is one raw lifecycle entry exactly as written in the document, after
// alias folding and whitespace trimming. Dates are kept as strings; parsing them is
// the model builder's job.
type Record struct {
	Branch         string `json:"branch"`
	PEP            int    `json:"pep"`
	Status         string `json:"status"`
	FirstRelease   string `json:"first_release"`
	EndOfLife      string `json:"end_of_life"`
	ReleaseManager string `json:"release_manager"`
}

// Entry pairs a version identifier (the JSON object key) with its record.
type Entry struct {
	Identifier string `json:"identifier"`
	Record     Record `json:"record"`
}

// Document wraps the validated payload and its origin. Entries keep the key
// order of the source document.
type Document struct {
	source  Source
	raw     []byte
	entries []Entry
}

// NewDocument parses and validates raw JSON. Every failure wraps
// ErrMalformedInput.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("dataset: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, malformed("%s: document is empty", src.Location())
	}

	entries, err := parseEntries(raw)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", src.Location(), err)
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, entries: entries}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the original payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Entries returns a copy of the parsed entries in document order.
func (d Document) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

// Len reports the number of records.
func (d Document) Len() int {
	return len(d.entries)
}

func parseEntries(raw []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, malformed("invalid JSON: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, malformed("top-level value must be an object keyed by version")
	}

	var (
		entries []Entry
		seen    = make(map[string]struct{})
	)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, malformed("invalid JSON: %v", err)
		}
		key, _ := keyTok.(string)
		identifier := strings.TrimSpace(key)
		if identifier == "" {
			return nil, malformed("empty version identifier")
		}
		if _, dup := seen[identifier]; dup {
			return nil, malformed("duplicate version identifier %q", identifier)
		}
		seen[identifier] = struct{}{}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, malformed("%s: invalid JSON: %v", identifier, err)
		}

		record, err := decodeRecord(identifier, value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Identifier: identifier, Record: record})
	}

	if _, err := dec.Token(); err != nil {
		return nil, malformed("invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("unexpected data after the top-level object")
	}

	if len(entries) == 0 {
		return nil, malformed("document has no records")
	}
	return entries, nil
}

func decodeRecord(identifier string, value any) (Record, error) {
	fields, ok := value.(map[string]any)
	if !ok {
		return Record{}, malformed("%s: record must be an object", identifier)
	}

	fields, err := foldAliases(identifier, fields)
	if err != nil {
		return Record{}, err
	}

	if err := RecordSchema().VisitJSON(fields); err != nil {
		return Record{}, malformed("%s: %v", identifier, err)
	}

	pep := fields[FieldPEP].(float64)
	if pep != math.Trunc(pep) {
		return Record{}, malformed("%s: pep must be an integer", identifier)
	}
	if pep < 1 || pep > math.MaxInt32 {
		return Record{}, malformed("%s: pep %v out of range", identifier, pep)
	}

	record := Record{
		Branch:         strings.TrimSpace(fields[FieldBranch].(string)),
		PEP:            int(pep),
		Status:         strings.TrimSpace(fields[FieldStatus].(string)),
		FirstRelease:   strings.TrimSpace(fields[FieldFirstRelease].(string)),
		EndOfLife:      strings.TrimSpace(fields[FieldEndOfLife].(string)),
		ReleaseManager: strings.TrimSpace(fields[FieldReleaseManager].(string)),
	}
	if record.Branch == "" {
		return Record{}, malformed("%s: branch is blank", identifier)
	}
	if containsMarkup(record.Branch) {
		return Record{}, malformed("%s: branch %q contains markup", identifier, record.Branch)
	}
	if record.ReleaseManager == "" {
		return Record{}, malformed("%s: release_manager is blank", identifier)
	}
	return record, nil
}

func foldAliases(identifier string, in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	for alias, canonical := range fieldAliases {
		value, ok := out[alias]
		if !ok {
			continue
		}
		if _, exists := out[canonical]; exists {
			return nil, malformed("%s: both %q and %q are set", identifier, alias, canonical)
		}
		out[canonical] = value
		delete(out, alias)
	}
	return out, nil
}
