package model

import (
	"time"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// VersionRecord is one tracked release branch with its derived fields.
type VersionRecord struct {
	Identifier     string `json:"identifier"`
	Branch         string `json:"branch"`
	Status         Status `json:"status"`
	PEP            int    `json:"pep"`
	ReleaseManager string `json:"release_manager"`

	// FirstRelease and EndOfLife keep the spelling used in the source
	// document (yyyy-mm or yyyy-mm-dd) so tables can echo it verbatim.
	FirstRelease string `json:"first_release"`
	EndOfLife    string `json:"end_of_life"`

	FirstReleaseDate  time.Time `json:"first_release_date"`
	EndOfLifeDate     time.Time `json:"end_of_life_date"`
	SecurityStartDate time.Time `json:"security_start_date"`

	FirstReleaseFuture bool `json:"first_release_future"`
	EndOfLifeFuture    bool `json:"end_of_life_future"`

	// SortKey is the PEP 440 reading of Identifier. Records are ordered by it,
	// newest first.
	SortKey pep440.Version `json:"-"`
}

// Dataset is the enriched record set of one run, sorted by descending SortKey.
type Dataset struct {
	Records []VersionRecord `json:"records"`
	Today   time.Time       `json:"today"`
}

// Len reports the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// Record looks a record up by identifier.
func (d Dataset) Record(identifier string) (VersionRecord, bool) {
	for _, rec := range d.Records {
		if rec.Identifier == identifier {
			return rec, true
		}
	}
	return VersionRecord{}, false
}
