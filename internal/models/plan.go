package models

import (
	"github.com/google/uuid"
)

// The plan types below separate the pure planning half of every bulk
// operation from the apply half. A plan is computed from an in-memory
// catalog snapshot with no I/O; the repositories apply it as one atomic
// batch against the store.

// RecordUpdate is one planned update together with the change list that
// becomes its audit entry.
type RecordUpdate struct {
	Record *Record
	Diff   string
}

// DeletePlan is the outcome of planning a batch delete: the records that
// were actually found for the selected ids.
type DeletePlan struct {
	Records []*Record
}

// IDs returns the document ids the store should delete.
func (p *DeletePlan) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(p.Records))
	for i, r := range p.Records {
		ids[i] = r.ID
	}
	return ids
}

// EditPlan is the outcome of planning a batch edit. Rows whose working copy
// did not differ from the original contribute nothing: no write, no audit
// entry, and they are not counted as changed.
type EditPlan struct {
	Updates []RecordUpdate
}

// ImportPlan is the outcome of planning a CSV import. CategoryUpdates maps a
// folder key to that folder's merged category list; a folder appears at most
// once per import regardless of how many rows introduced new categories.
type ImportPlan struct {
	Inserts         []*Record
	CategoryUpdates map[string][]string
	SkippedRows     int
}

// ImageAsset is one uploaded image keyed by its filename.
type ImageAsset struct {
	Filename string
	Data     []byte
}

// ImageMatch pairs one asset with every catalog record sharing the part
// number its filename stem resolved to.
type ImageMatch struct {
	Asset     ImageAsset
	RecordIDs []uuid.UUID
}

// ImageMatchPlan is the outcome of matching a set of image assets against
// the catalog's part-number index. Unmatched assets are reported, not
// treated as errors.
type ImageMatchPlan struct {
	Matches   []ImageMatch
	Unmatched []string
}

// BatchWrite is the store-facing shape of an applied plan: the full set of
// writes one bulk operation commits as a unit.
type BatchWrite struct {
	Inserts   []*Record
	Updates   []*Record
	DeleteIDs []uuid.UUID
}
