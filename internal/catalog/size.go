package catalog

import (
	"strconv"
	"strings"
)

// Size order classes. Explicit millimeter sizes sort before inch/fraction
// and bare numeric sizes, non-numeric labels group after all numeric sizes,
// and blank sizes always sort last.
const (
	SizeClassMillimeter = 0
	SizeClassNumeric    = 1
	SizeClassLabel      = 2
	SizeClassNone       = 3
)

// SizeValue is the comparable form of a free-form size string. Num carries
// the parsed magnitude for the millimeter and numeric classes; Label carries
// the lowercased original for the label class.
type SizeValue struct {
	Class int
	Num   float64
	Label string
}

// inchMarkers are stripped rune-by-rune before a size is tried as a number:
// the quote character, the letters of "inch" and the characters of 英吋.
const inchMarkers = `"inch英吋`

// ParseSize converts a free-form size string into a SizeValue. It never
// fails: unparsable numeric components fall back to zero and anything that
// is not a number at all becomes a label.
//
// Recognized forms: "10mm" (millimeters), `1-1/2"` (mixed number), "5/8"
// (fraction), "3.5" (bare number), anything else ("XL") is a label.
func ParseSize(raw string) SizeValue {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return SizeValue{Class: SizeClassNone}
	}

	if strings.HasSuffix(s, "mm") {
		num, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "mm")), 64)
		if err != nil {
			num = 0
		}
		return SizeValue{Class: SizeClassMillimeter, Num: num}
	}

	clean := strings.TrimSpace(strings.Map(func(r rune) rune {
		if strings.ContainsRune(inchMarkers, r) {
			return -1
		}
		return r
	}, s))

	if num, ok := parseSizeNumber(clean); ok {
		return SizeValue{Class: SizeClassNumeric, Num: num}
	}
	return SizeValue{Class: SizeClassLabel, Label: s}
}

// parseSizeNumber handles mixed numbers ("1-1/2"), plain fractions ("5/8")
// and bare numbers.
func parseSizeNumber(s string) (float64, bool) {
	if strings.Contains(s, "-") && strings.Contains(s, "/") {
		parts := strings.Split(s, "-")
		if len(parts) != 2 {
			return 0, false
		}
		whole, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return 0, false
		}
		frac, ok := parseFraction(parts[1])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	}

	if strings.Contains(s, "/") {
		return parseFraction(s)
	}

	num, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

func parseFraction(s string) (float64, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, false
	}
	numerator, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, false
	}
	denominator, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || denominator == 0 {
		return 0, false
	}
	return numerator / denominator, true
}
