package catalog

import (
	"strings"

	"stockroom/internal/models"
)

// ResolutionState describes how far a part number plus a partial attribute
// selection narrows the catalog down to one variant.
type ResolutionState string

const (
	// StateEmpty: no part number entered yet.
	StateEmpty ResolutionState = "empty"
	// StateNotFound: the part number matches nothing in the catalog. This is
	// invalid input and callers surface it as an error.
	StateNotFound ResolutionState = "not_found"
	// StateAmbiguous: the part number matches, but the selection does not
	// yet pin down exactly one variant. Incomplete input, not an error.
	StateAmbiguous ResolutionState = "ambiguous"
	// StateResolved: exactly one record matches. Only in this state may a
	// transaction or edit be submitted.
	StateResolved ResolutionState = "resolved"
)

// AttributeOptions holds the distinct values each attribute takes across the
// candidate set, in catalog order.
type AttributeOptions struct {
	Sizes      []string `json:"sizes"`
	Categories []string `json:"categories"`
	Materials  []string `json:"materials"`
	Specs      []string `json:"specs"`
	Colors     []string `json:"colors"`
}

// Resolution is the full outcome of resolving a part number against the
// catalog: the state, every variant sharing the part number, the option sets
// the caller can offer, the (possibly auto-filled) selection, and the unique
// record when resolved.
type Resolution struct {
	State      ResolutionState           `json:"state"`
	Candidates []*models.Record          `json:"candidates"`
	Options    AttributeOptions          `json:"options"`
	Selection  models.AttributeSelection `json:"selection"`
	Resolved   *models.Record            `json:"resolved,omitempty"`
}

// Resolve narrows the catalog to the variant a transaction or edit targets.
// The part number is trimmed and matched case-insensitively. Attribute
// dimensions offering only one value are filled in automatically, and the
// category defaults to the first available one even when several exist.
// A record is resolved only when every attribute of the selection equals the
// record's corresponding field (size and spec compared with empty-string
// normalization).
//
// Callers changing the part number must start over with an empty selection;
// Resolve itself holds no state between calls.
func Resolve(catalog []*models.Record, partNumber string, sel models.AttributeSelection) Resolution {
	trimmed := strings.TrimSpace(partNumber)
	if trimmed == "" {
		return Resolution{State: StateEmpty}
	}

	lowered := strings.ToLower(trimmed)
	var candidates []*models.Record
	for _, r := range catalog {
		if strings.ToLower(r.PartNumber) == lowered {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return Resolution{State: StateNotFound}
	}

	opts := optionsOf(candidates)
	sel = autoFill(opts, sel)

	res := Resolution{
		State:      StateAmbiguous,
		Candidates: candidates,
		Options:    opts,
		Selection:  sel,
	}
	for _, r := range candidates {
		if r.Size == sel.Size &&
			r.Category == sel.Category &&
			r.Material == sel.Material &&
			r.Spec == sel.Spec &&
			r.Color == sel.Color {
			res.State = StateResolved
			res.Resolved = r
			return res
		}
	}
	return res
}

func optionsOf(candidates []*models.Record) AttributeOptions {
	return AttributeOptions{
		Sizes:      distinct(candidates, func(r *models.Record) string { return r.Size }),
		Categories: distinct(candidates, func(r *models.Record) string { return r.Category }),
		Materials:  distinct(candidates, func(r *models.Record) string { return r.Material }),
		Specs:      distinct(candidates, func(r *models.Record) string { return r.Spec }),
		Colors:     distinct(candidates, func(r *models.Record) string { return r.Color }),
	}
}

// autoFill pre-selects every attribute dimension with a single distinct
// value. The category is treated as lower friction than the others: it
// defaults to the first available value even when several exist.
func autoFill(opts AttributeOptions, sel models.AttributeSelection) models.AttributeSelection {
	sel.Size = fillSingle(opts.Sizes, sel.Size)
	sel.Material = fillSingle(opts.Materials, sel.Material)
	sel.Spec = fillSingle(opts.Specs, sel.Spec)
	sel.Color = fillSingle(opts.Colors, sel.Color)
	if sel.Category == "" && len(opts.Categories) > 0 {
		sel.Category = opts.Categories[0]
	}
	return sel
}

func fillSingle(options []string, current string) string {
	if current == "" && len(options) == 1 {
		return options[0]
	}
	return current
}

func distinct(records []*models.Record, value func(*models.Record) string) []string {
	seen := make(map[string]bool, len(records))
	var values []string
	for _, r := range records {
		v := value(r)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}
