package models

// DefaultCategories are present in every folder's category set and can never
// be removed.
var DefaultCategories = []string{"零件", "成品"}

// CategorySet is the per-folder list of permitted category values: the two
// defaults plus any custom entries added by administrators or discovered
// during CSV import. The set is keyed by folder, so different folders may
// carry disjoint custom categories.
type CategorySet struct {
	Folder string   `json:"folder" db:"folder"`
	List   []string `json:"list" db:"list"`
}

// IsDefaultCategory reports whether name is one of the fixed defaults.
func IsDefaultCategory(name string) bool {
	for _, d := range DefaultCategories {
		if name == d {
			return true
		}
	}
	return false
}

// MergeCategories unions extra values into list, preserving order and
// dropping duplicates. The defaults are always prepended if missing.
func MergeCategories(list []string, extra ...string) []string {
	seen := make(map[string]bool, len(list)+len(extra))
	merged := make([]string, 0, len(DefaultCategories)+len(list)+len(extra))
	for _, group := range [][]string{DefaultCategories, list, extra} {
		for _, c := range group {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			merged = append(merged, c)
		}
	}
	return merged
}
