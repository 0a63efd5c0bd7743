package catalog

import (
	"testing"

	"stockroom/internal/models"

	"github.com/stretchr/testify/assert"
)

func variantCatalog() []*models.Record {
	return []*models.Record{
		{PartNumber: "A1", Name: "六角螺絲", Size: `5/8"`, Category: "零件", Material: "不鏽鋼", Color: "黑色"},
		{PartNumber: "A1", Name: "六角螺絲", Size: `5/8"`, Category: "零件", Material: "不鏽鋼", Color: "紅色"},
		{PartNumber: "B2", Name: "墊圈", Size: "10mm", Category: "成品", Material: "碳鋼", Color: ""},
	}
}

func TestResolve_EmptyPartNumber(t *testing.T) {
	res := Resolve(variantCatalog(), "   ", models.AttributeSelection{})
	assert.Equal(t, StateEmpty, res.State)
}

func TestResolve_NotFound(t *testing.T) {
	res := Resolve(variantCatalog(), "Z9", models.AttributeSelection{})
	assert.Equal(t, StateNotFound, res.State)
}

func TestResolve_CaseInsensitiveMatch(t *testing.T) {
	res := Resolve(variantCatalog(), "b2", models.AttributeSelection{})
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "B2", res.Resolved.PartNumber)
}

func TestResolve_SingleValuedAttributesAutoFill(t *testing.T) {
	// B2 has one variant: every attribute fills in and it resolves at once.
	res := Resolve(variantCatalog(), "B2", models.AttributeSelection{})
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "10mm", res.Selection.Size)
	assert.Equal(t, "碳鋼", res.Selection.Material)
}

func TestResolve_AmbiguousUntilColorChosen(t *testing.T) {
	res := Resolve(variantCatalog(), "A1", models.AttributeSelection{})
	assert.Equal(t, StateAmbiguous, res.State)
	assert.Len(t, res.Candidates, 2)
	assert.Equal(t, []string{"黑色", "紅色"}, res.Options.Colors)
	// Single-valued dimensions are pre-filled even while ambiguous.
	assert.Equal(t, `5/8"`, res.Selection.Size)
	assert.Nil(t, res.Resolved)

	res = Resolve(variantCatalog(), "A1", models.AttributeSelection{Color: "紅色"})
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "紅色", res.Resolved.Color)
}

func TestResolve_CategoryDefaultsToFirstOption(t *testing.T) {
	catalog := []*models.Record{
		{PartNumber: "C3", Name: "成品甲", Category: "成品", Color: "白色"},
		{PartNumber: "C3", Name: "成品甲", Category: "零件", Color: "白色"},
	}
	res := Resolve(catalog, "C3", models.AttributeSelection{})
	// Category picks the first option even with two available, so the first
	// variant resolves.
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "成品", res.Resolved.Category)
}

func TestResolve_SelectionMustMatchExactly(t *testing.T) {
	res := Resolve(variantCatalog(), "A1", models.AttributeSelection{Color: "白色"})
	assert.Equal(t, StateAmbiguous, res.State)
	assert.Nil(t, res.Resolved)
}
