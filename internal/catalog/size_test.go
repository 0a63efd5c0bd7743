package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSize_Fractions(t *testing.T) {
	v := ParseSize("5/8")
	assert.Equal(t, SizeClassNumeric, v.Class)
	assert.InDelta(t, 0.625, v.Num, 1e-9)
}

func TestParseSize_MixedNumberWithInchMarker(t *testing.T) {
	v := ParseSize(`1-1/2"`)
	assert.Equal(t, SizeClassNumeric, v.Class)
	assert.InDelta(t, 1.5, v.Num, 1e-9)
}

func TestParseSize_InchWordMarkers(t *testing.T) {
	for _, raw := range []string{`3/4"`, "3/4inch", "3/4英吋", "3/4吋"} {
		v := ParseSize(raw)
		assert.Equal(t, SizeClassNumeric, v.Class, "input %q", raw)
		assert.InDelta(t, 0.75, v.Num, 1e-9, "input %q", raw)
	}
}

func TestParseSize_Millimetres(t *testing.T) {
	v := ParseSize("10mm")
	assert.Equal(t, SizeClassMillimeter, v.Class)
	assert.InDelta(t, 10, v.Num, 1e-9)

	// Case-insensitive suffix.
	v = ParseSize("8MM")
	assert.Equal(t, SizeClassMillimeter, v.Class)
	assert.InDelta(t, 8, v.Num, 1e-9)
}

func TestParseSize_MalformedMillimetre(t *testing.T) {
	// An unparseable prefix still classifies as millimetre, with value zero.
	v := ParseSize("xmm")
	assert.Equal(t, SizeClassMillimeter, v.Class)
	assert.Equal(t, 0.0, v.Num)
}

func TestParseSize_Blank(t *testing.T) {
	assert.Equal(t, SizeClassNone, ParseSize("").Class)
	assert.Equal(t, SizeClassNone, ParseSize("   ").Class)
}

func TestParseSize_Label(t *testing.T) {
	v := ParseSize("XL")
	assert.Equal(t, SizeClassLabel, v.Class)
	assert.Equal(t, "xl", v.Label)
}

func TestParseSize_BareNumber(t *testing.T) {
	v := ParseSize("12")
	assert.Equal(t, SizeClassNumeric, v.Class)
	assert.InDelta(t, 12, v.Num, 1e-9)
}

func TestParseSize_ZeroDenominatorIsLabel(t *testing.T) {
	v := ParseSize("5/0")
	assert.Equal(t, SizeClassLabel, v.Class)
}

func TestParseSize_ClassOrdering(t *testing.T) {
	mm := ParseSize("10mm")
	numeric := ParseSize(`1/4"`)
	label := ParseSize("XL")
	blank := ParseSize("")

	assert.Less(t, mm.Class, numeric.Class)
	assert.Less(t, numeric.Class, label.Class)
	assert.Less(t, label.Class, blank.Class)
}
