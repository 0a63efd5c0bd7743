package catalog

import (
	"testing"

	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPlanBatchDelete_DropsMissingIDs(t *testing.T) {
	a := &models.Record{ID: uuid.New(), PartNumber: "A1"}
	b := &models.Record{ID: uuid.New(), PartNumber: "B2"}
	gone := uuid.New()

	plan := PlanBatchDelete([]*models.Record{a, b}, []uuid.UUID{a.ID, gone})
	assert.Len(t, plan.Records, 1)
	assert.Equal(t, []uuid.UUID{a.ID}, plan.IDs())
}

func TestPlanBatchEdit_OnlyChangedRowsPlanned(t *testing.T) {
	a := &models.Record{ID: uuid.New(), PartNumber: "A1", Quantity: 10}
	b := &models.Record{ID: uuid.New(), PartNumber: "B2", Quantity: 20}

	changedA := *a
	changedA.Quantity = 15
	sameB := *b

	plan := PlanBatchEdit([]*models.Record{a, b}, []*models.Record{&changedA, &sameB})
	assert.Len(t, plan.Updates, 1)
	assert.Equal(t, a.ID, plan.Updates[0].Record.ID)
	assert.Equal(t, "庫存: 10 -> 15", plan.Updates[0].Diff)
}

func TestPlanBatchEdit_Idempotent(t *testing.T) {
	a := &models.Record{ID: uuid.New(), PartNumber: "A1", Quantity: 10}
	same := *a
	plan := PlanBatchEdit([]*models.Record{a}, []*models.Record{&same})
	assert.Empty(t, plan.Updates)
}

func TestPlanBatchEdit_UnknownRowsSkipped(t *testing.T) {
	known := &models.Record{ID: uuid.New(), PartNumber: "A1"}
	stranger := &models.Record{ID: uuid.New(), PartNumber: "Z9", Quantity: 5}
	plan := PlanBatchEdit([]*models.Record{known}, []*models.Record{stranger})
	assert.Empty(t, plan.Updates)
}

func TestPlanImport_RowDefaults(t *testing.T) {
	rows := [][]string{
		{"A-001", "螺絲", `5/8"`, "", "不鏽鋼", "M5x10", "黑色", "備註", "abc", ""},
	}
	plan := PlanImport(rows, nil)
	assert.Len(t, plan.Inserts, 1)

	rec := plan.Inserts[0]
	// Blank category falls back to the first default; malformed quantity
	// falls back to zero; missing safety stock falls back to the default.
	assert.Equal(t, "零件", rec.Category)
	assert.Equal(t, 0, rec.Quantity)
	assert.Equal(t, models.DefaultSafetyStock, rec.SafetyStock)
}

func TestPlanImport_ShortRowsSkipped(t *testing.T) {
	rows := [][]string{
		{"A-001", "螺絲"},
		{"B-002", "墊圈", "10mm", "零件", "碳鋼", "", "", "", "5", "100", ""},
	}
	plan := PlanImport(rows, nil)
	assert.Len(t, plan.Inserts, 1)
	assert.Equal(t, 1, plan.SkippedRows)
	assert.Equal(t, 100, plan.Inserts[0].SafetyStock)
}

func TestPlanImport_CategoryUpdatesDedupedPerFolder(t *testing.T) {
	rows := [][]string{
		{"A-001", "鉤頭甲", "", "特殊件", "", "", "", ""},
		{"A-002", "鉤頭乙", "", "特殊件", "", "", "", ""},
		{"B-001", "鉤頭丙", "", "特殊件", "", "", "", ""},
	}
	plan := PlanImport(rows, map[string][]string{})

	// One update per folder even though the category repeats.
	assert.Len(t, plan.CategoryUpdates, 2)
	assert.Equal(t, []string{"零件", "成品", "特殊件"}, plan.CategoryUpdates["A"])
	assert.Equal(t, []string{"零件", "成品", "特殊件"}, plan.CategoryUpdates["B"])
}

func TestPlanImport_ExistingCategoriesNotRewritten(t *testing.T) {
	rows := [][]string{
		{"A-001", "螺絲", "", "特殊件", "", "", "", ""},
	}
	sets := map[string][]string{"A": {"零件", "成品", "特殊件"}}
	plan := PlanImport(rows, sets)
	assert.Empty(t, plan.CategoryUpdates)
}

func TestPlanImport_DefaultCategoriesNeverWiden(t *testing.T) {
	rows := [][]string{
		{"A-001", "螺絲", "", "成品", "", "", "", ""},
	}
	plan := PlanImport(rows, map[string][]string{})
	assert.Empty(t, plan.CategoryUpdates)
}

func TestPlanImageMatch_FansOutAndCountsPerAsset(t *testing.T) {
	black := &models.Record{ID: uuid.New(), PartNumber: "A1"}
	red := &models.Record{ID: uuid.New(), PartNumber: "A1"}
	other := &models.Record{ID: uuid.New(), PartNumber: "B2"}

	plan := PlanImageMatch([]models.ImageAsset{
		{Filename: "A1.jpg"},
		{Filename: "zzz.png"},
	}, []*models.Record{black, red, other})

	assert.Len(t, plan.Matches, 1)
	assert.Len(t, plan.Matches[0].RecordIDs, 2)
	assert.Equal(t, []string{"zzz.png"}, plan.Unmatched)
}

func TestPlanImageMatch_StemBeforeFirstDot(t *testing.T) {
	r := &models.Record{ID: uuid.New(), PartNumber: "a-001"}
	plan := PlanImageMatch([]models.ImageAsset{
		{Filename: "A-001.front.JPG"},
	}, []*models.Record{r})
	assert.Len(t, plan.Matches, 1)
}
