package catalog

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"stockroom/internal/models"
)

// ImportMinColumns is the minimum number of CSV columns a row must carry to
// become an insert (through the remarks column). Shorter rows are silently
// skipped.
const ImportMinColumns = 8

// Import column order: part number, name, size, category, material, spec,
// color, remarks, quantity, safety stock, photo URL.
const (
	colPartNumber = iota
	colName
	colSize
	colCategory
	colMaterial
	colSpec
	colColor
	colRemarks
	colQuantity
	colSafetyStock
	colPhoto
)

// PlanBatchDelete resolves the selected ids against the catalog snapshot.
// Ids that no longer exist are dropped from the plan rather than failing it.
func PlanBatchDelete(catalog []*models.Record, ids []uuid.UUID) models.DeletePlan {
	byID := make(map[uuid.UUID]*models.Record, len(catalog))
	for _, r := range catalog {
		byID[r.ID] = r
	}
	var plan models.DeletePlan
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			plan.Records = append(plan.Records, r)
		}
	}
	return plan
}

// PlanBatchEdit diffs each working copy against its original. Only rows with
// a non-empty diff are planned; the changed count reported to the user is
// the length of Updates, not the number of rows presented.
func PlanBatchEdit(originals, working []*models.Record) models.EditPlan {
	byID := make(map[uuid.UUID]*models.Record, len(originals))
	for _, r := range originals {
		byID[r.ID] = r
	}
	var plan models.EditPlan
	for _, w := range working {
		original, ok := byID[w.ID]
		if !ok {
			continue
		}
		if diff := Diff(original, w); diff != "" {
			plan.Updates = append(plan.Updates, models.RecordUpdate{Record: w, Diff: diff})
		}
	}
	return plan
}

// PlanImport turns parsed CSV rows into an insert plan plus the category-set
// side effects the inserts imply. categorySets is the current list per
// folder; folders not present are assumed to hold only the defaults. Each
// folder appears in CategoryUpdates at most once, with its full merged list,
// and only when the import actually introduces a category the folder does
// not already have.
func PlanImport(rows [][]string, categorySets map[string][]string) models.ImportPlan {
	plan := models.ImportPlan{CategoryUpdates: make(map[string][]string)}
	newCats := make(map[string][]string)

	for _, cols := range rows {
		if len(cols) < ImportMinColumns {
			plan.SkippedRows++
			continue
		}

		category := strings.TrimSpace(cols[colCategory])
		if category == "" {
			category = models.DefaultCategories[0]
		}

		rec := &models.Record{
			PartNumber:  strings.TrimSpace(cols[colPartNumber]),
			Name:        strings.TrimSpace(cols[colName]),
			Size:        strings.TrimSpace(cols[colSize]),
			Category:    category,
			Material:    strings.TrimSpace(cols[colMaterial]),
			Spec:        strings.TrimSpace(cols[colSpec]),
			Color:       strings.TrimSpace(cols[colColor]),
			Remarks:     strings.TrimSpace(cols[colRemarks]),
			Quantity:    intColumn(cols, colQuantity, 0),
			SafetyStock: intColumn(cols, colSafetyStock, models.DefaultSafetyStock),
		}
		if photo := stringColumn(cols, colPhoto); photo != "" {
			rec.Photo = photo
			rec.Photos = []string{photo}
		}
		plan.Inserts = append(plan.Inserts, rec)

		if !models.IsDefaultCategory(category) {
			folder := FolderOf(rec)
			if !contains(categorySets[folder], category) && !contains(newCats[folder], category) {
				newCats[folder] = append(newCats[folder], category)
			}
		}
	}

	for folder, cats := range newCats {
		plan.CategoryUpdates[folder] = models.MergeCategories(categorySets[folder], cats...)
	}
	return plan
}

// PlanImageMatch resolves each asset's filename stem (case-insensitive,
// extension dropped) against the catalog's part-number index. A matched
// asset fans out to every variant sharing the part number; assets with no
// match are reported, not failed. The matched count is per asset, not per
// record written.
func PlanImageMatch(assets []models.ImageAsset, catalog []*models.Record) models.ImageMatchPlan {
	index := make(map[string][]uuid.UUID)
	for _, r := range catalog {
		if r.PartNumber == "" {
			continue
		}
		key := strings.ToLower(r.PartNumber)
		index[key] = append(index[key], r.ID)
	}

	var plan models.ImageMatchPlan
	for _, asset := range assets {
		stem := strings.ToLower(asset.Filename)
		if i := strings.IndexByte(stem, '.'); i >= 0 {
			stem = stem[:i]
		}
		ids := index[stem]
		if len(ids) == 0 {
			plan.Unmatched = append(plan.Unmatched, asset.Filename)
			continue
		}
		plan.Matches = append(plan.Matches, models.ImageMatch{Asset: asset, RecordIDs: ids})
	}
	return plan
}

func intColumn(cols []string, idx, fallback int) int {
	if idx >= len(cols) {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(cols[idx]))
	if err != nil {
		return fallback
	}
	return n
}

func stringColumn(cols []string, idx int) string {
	if idx >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[idx])
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
