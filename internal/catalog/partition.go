package catalog

import (
	"sort"
	"strings"
	"unicode"

	"stockroom/internal/models"
)

// UnknownFolder is the sentinel folder for records with neither a part
// number nor a name.
const UnknownFolder = "?"

// FolderCount is one derived folder key with the number of records under it.
type FolderCount struct {
	Folder string `json:"folder"`
	Count  int    `json:"count"`
}

// FolderOf derives a record's folder: the upper-cased first character of the
// part number, falling back to the name, falling back to the sentinel.
// Folders are not stored; they are recomputed from the catalog on every
// read.
func FolderOf(r *models.Record) string {
	return FolderKey(r.PartNumber, r.Name)
}

// FolderKey derives the folder for a raw part number / name pair.
func FolderKey(partNumber, name string) string {
	for _, s := range []string{partNumber, name} {
		for _, c := range s {
			return string(unicode.ToUpper(c))
		}
	}
	return UnknownFolder
}

// Folders groups the catalog by folder key and returns the folders sorted by
// key.
func Folders(catalog []*models.Record) []FolderCount {
	counts := make(map[string]int)
	for _, r := range catalog {
		counts[FolderOf(r)]++
	}
	folders := make([]FolderCount, 0, len(counts))
	for key, n := range counts {
		folders = append(folders, FolderCount{Folder: key, Count: n})
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Folder < folders[j].Folder })
	return folders
}

// FilterByFolder returns the records whose derived folder equals folder.
func FilterByFolder(catalog []*models.Record, folder string) []*models.Record {
	var out []*models.Record
	for _, r := range catalog {
		if FolderOf(r) == folder {
			out = append(out, r)
		}
	}
	return out
}

// FilterBySearch returns the records whose part number or name contains term
// case-insensitively. Search and folder selection are mutually exclusive
// view modes; the caller clears the active folder when a search term is set.
func FilterBySearch(catalog []*models.Record, term string) []*models.Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return catalog
	}
	var out []*models.Record
	for _, r := range catalog {
		if strings.Contains(strings.ToLower(r.PartNumber), term) ||
			strings.Contains(strings.ToLower(r.Name), term) {
			out = append(out, r)
		}
	}
	return out
}

// Sortable columns for the explicit column-sort override. The size column is
// deliberately absent: size ordering is only ever the parser's and cannot be
// flipped.
var sortColumns = map[string]func(a, b *models.Record) int{
	"part_number": func(a, b *models.Record) int { return collatedCompare(a.PartNumber, b.PartNumber) },
	"name":        func(a, b *models.Record) int { return collatedCompare(a.Name, b.Name) },
	"category":    func(a, b *models.Record) int { return collatedCompare(a.Category, b.Category) },
	"color":       func(a, b *models.Record) int { return collatedCompare(a.Color, b.Color) },
	"remarks":     func(a, b *models.Record) int { return collatedCompare(a.Remarks, b.Remarks) },
	"material": func(a, b *models.Record) int {
		if res := collatedCompare(a.Material, b.Material); res != 0 {
			return res
		}
		return collatedCompare(a.Spec, b.Spec)
	},
}

// SortRecords sorts records in place. With no column (or an unsortable one,
// like size) the default total order applies and descending is ignored.
// Otherwise the named column's comparator decides, flipped when descending.
func SortRecords(records []*models.Record, column string, descending bool) {
	cmp, ok := sortColumns[column]
	if !ok {
		SortDefault(records)
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		res := cmp(records[i], records[j])
		if descending {
			return res > 0
		}
		return res < 0
	})
}
