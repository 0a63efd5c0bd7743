package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"stockroom/internal/models"
)

// emptyMark renders a missing value in change lists.
const emptyMark = "(空)"

// diffFields is the fixed field list a diff inspects, in report order.
var diffFields = []struct {
	label string
	value func(*models.Record) string
}{
	{"料號", func(r *models.Record) string { return r.PartNumber }},
	{"品名", func(r *models.Record) string { return r.Name }},
	{"尺寸", func(r *models.Record) string { return r.Size }},
	{"分類", func(r *models.Record) string { return r.Category }},
	{"材質", func(r *models.Record) string { return r.Material }},
	{"材質規格", func(r *models.Record) string { return r.Spec }},
	{"顏色", func(r *models.Record) string { return r.Color }},
	{"備註", func(r *models.Record) string { return r.Remarks }},
	{"庫存", func(r *models.Record) string { return strconv.Itoa(r.Quantity) }},
	{"安全庫存", func(r *models.Record) string { return strconv.Itoa(r.SafetyStock) }},
}

// Diff reports the field-level changes between two snapshots of the same
// record as a semicolon-joined list of "label: old -> new" entries. Values
// are compared after string normalization, so a numeric field equals its
// string rendering. Photo lists are compared structurally and reported as a
// count change only. The result is empty when nothing differs; callers use
// that to skip both the write and the audit entry.
func Diff(before, after *models.Record) string {
	var changes []string
	for _, f := range diffFields {
		oldVal, newVal := f.value(before), f.value(after)
		if oldVal != newVal {
			changes = append(changes, fmt.Sprintf("%s: %s -> %s", f.label, orEmpty(oldVal), orEmpty(newVal)))
		}
	}

	oldPhotos, newPhotos := before.PhotoList(), after.PhotoList()
	if !equalStrings(oldPhotos, newPhotos) {
		changes = append(changes, fmt.Sprintf("照片: %d張 -> %d張", len(oldPhotos), len(newPhotos)))
	}

	return strings.Join(changes, "; ")
}

// Identity renders the audit-log subject line for a record.
func Identity(r *models.Record) string {
	if r == nil {
		return "未知產品"
	}
	spec := ""
	if r.Spec != "" {
		spec = fmt.Sprintf("(%s)", r.Spec)
	}
	return fmt.Sprintf("[%s] %s - %s%s %s", r.PartNumber, r.Name, r.Material, spec, r.Color)
}

func orEmpty(s string) string {
	if s == "" {
		return emptyMark
	}
	return s
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
