package models

import (
	"github.com/google/uuid"
)

// DefaultSafetyStock is applied when a record is created or imported without
// an explicit safety stock threshold.
const DefaultSafetyStock = 5000

// Record is one catalog entry. Several records may share a part number and
// differ only in size, material, spec or color; each such record is a
// distinct variant with its own quantity.
type Record struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PartNumber  string    `json:"part_number" db:"part_number"`
	Name        string    `json:"name" db:"name"`
	Size        string    `json:"size" db:"size"`
	Category    string    `json:"category" db:"category"`
	Material    string    `json:"material" db:"material"`
	Spec        string    `json:"spec" db:"spec"`
	Color       string    `json:"color" db:"color"`
	Remarks     string    `json:"remarks" db:"remarks"`
	Quantity    int       `json:"quantity" db:"quantity"`
	SafetyStock int       `json:"safety_stock" db:"safety_stock"`
	Photos      []string  `json:"photos" db:"photos"`
	// Photo is the legacy single-image field kept for data imported before
	// multi-photo support. PhotoList resolves the two.
	Photo       string `json:"photo,omitempty" db:"photo"`
	LastUpdated string `json:"last_updated" db:"last_updated"`
	LastEditor  string `json:"last_editor" db:"last_editor"`
}

// PhotoList returns the effective photo list, falling back to the legacy
// single-photo field when the list is empty. The first entry is the cover.
func (r *Record) PhotoList() []string {
	if len(r.Photos) > 0 {
		return r.Photos
	}
	if r.Photo != "" {
		return []string{r.Photo}
	}
	return nil
}

// CoverPhoto returns the first photo reference or the empty string.
func (r *Record) CoverPhoto() string {
	if list := r.PhotoList(); len(list) > 0 {
		return list[0]
	}
	return ""
}

// LowStock reports whether the record is at or below its safety stock
// threshold.
func (r *Record) LowStock() bool {
	threshold := r.SafetyStock
	if threshold <= 0 {
		threshold = DefaultSafetyStock
	}
	return r.Quantity <= threshold
}

// AttributeSelection is the transient tuple a user builds up while narrowing
// the variants of one part number down to a single record. Empty fields mean
// "not selected yet". It is never persisted.
type AttributeSelection struct {
	Size     string `json:"size"`
	Category string `json:"category"`
	Material string `json:"material"`
	Spec     string `json:"spec"`
	Color    string `json:"color"`
}
