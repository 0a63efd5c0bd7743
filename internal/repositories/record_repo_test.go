package repositories

import (
	"context"
	"errors"
	"testing"

	"stockroom/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RecordRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     RecordRepository
	recordID uuid.UUID
	context  context.Context
}

func (suite *RecordRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewRecordRepo(mock)
	suite.recordID = uuid.New()
	suite.context = context.Background()
}

func (suite *RecordRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestRecordRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RecordRepoTestSuite))
}

func sampleRecord(id uuid.UUID) *models.Record {
	return &models.Record{
		ID:          id,
		PartNumber:  "A-001",
		Name:        "六角螺絲",
		Size:        `5/8"`,
		Category:    "零件",
		Material:    "不鏽鋼",
		Spec:        "M5x10",
		Color:       "黑色",
		Remarks:     "",
		Quantity:    120,
		SafetyStock: 5000,
		Photos:      []string{"https://img.example/a-001.jpg"},
		LastUpdated: "2025/1/1 上午10:00:00",
		LastEditor:  "user@example.com",
	}
}

func (suite *RecordRepoTestSuite) TestCreate_Success() {
	record := sampleRecord(suite.recordID)

	suite.mock.ExpectExec(`
		INSERT INTO records \(id, part_number, name, size, category, material, spec, color, remarks, quantity, safety_stock, photos, last_updated, last_editor\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9, \$10, \$11, \$12, \$13, \$14\)
	`).WithArgs(record.ID, record.PartNumber, record.Name, record.Size, record.Category,
		record.Material, record.Spec, record.Color, record.Remarks,
		record.Quantity, record.SafetyStock, record.Photos,
		record.LastUpdated, record.LastEditor).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, record)
	assert.NoError(suite.T(), err)
}

func (suite *RecordRepoTestSuite) TestCreate_AssignsID() {
	record := sampleRecord(uuid.Nil)
	record.ID = uuid.Nil

	suite.mock.ExpectExec(`INSERT INTO records`).
		WithArgs(pgxmock.AnyArg(), record.PartNumber, record.Name, record.Size, record.Category,
			record.Material, record.Spec, record.Color, record.Remarks,
			record.Quantity, record.SafetyStock, record.Photos,
			record.LastUpdated, record.LastEditor).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, record)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, record.ID)
}

func (suite *RecordRepoTestSuite) TestGetByID_Success() {
	rows := pgxmock.NewRows([]string{"id", "part_number", "name", "size", "category", "material", "spec", "color", "remarks", "quantity", "safety_stock", "photos", "last_updated", "last_editor"}).
		AddRow(suite.recordID, "A-001", "六角螺絲", `5/8"`, "零件", "不鏽鋼", "M5x10", "黑色", "", 120, 5000, []string{"https://img.example/a-001.jpg"}, "2025/1/1 上午10:00:00", "user@example.com")

	suite.mock.ExpectQuery(`SELECT id, part_number, name, size, category, material, spec, color, remarks, quantity, safety_stock, photos, last_updated, last_editor FROM records WHERE id = \$1`).
		WithArgs(suite.recordID).
		WillReturnRows(rows)

	record, err := suite.repo.GetByID(suite.context, suite.recordID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "A-001", record.PartNumber)
	assert.Equal(suite.T(), 120, record.Quantity)
	assert.Len(suite.T(), record.Photos, 1)
}

func (suite *RecordRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT id, part_number, name, size, category, material, spec, color, remarks, quantity, safety_stock, photos, last_updated, last_editor FROM records WHERE id = \$1`).
		WithArgs(suite.recordID).
		WillReturnError(pgx.ErrNoRows)

	record, err := suite.repo.GetByID(suite.context, suite.recordID)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), record)
}

func (suite *RecordRepoTestSuite) TestList_Success() {
	rows := pgxmock.NewRows([]string{"id", "part_number", "name", "size", "category", "material", "spec", "color", "remarks", "quantity", "safety_stock", "photos", "last_updated", "last_editor"}).
		AddRow(uuid.New(), "A-001", "六角螺絲", `5/8"`, "零件", "不鏽鋼", "M5x10", "黑色", "", 120, 5000, []string(nil), "", "").
		AddRow(uuid.New(), "B-002", "彈簧墊圈", "10mm", "零件", "碳鋼", "", "", "", 40, 5000, []string(nil), "", "")

	suite.mock.ExpectQuery(`SELECT id, part_number, name, size, category, material, spec, color, remarks, quantity, safety_stock, photos, last_updated, last_editor FROM records`).
		WillReturnRows(rows)

	records, err := suite.repo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 2)
	assert.Equal(suite.T(), "B-002", records[1].PartNumber)
}

func (suite *RecordRepoTestSuite) TestAdjustQuantity_Success() {
	suite.mock.ExpectQuery(`
		UPDATE records
		SET quantity = quantity \+ \$2, last_updated = \$3, last_editor = \$4
		WHERE id = \$1 AND quantity \+ \$2 >= 0
		RETURNING quantity
	`).WithArgs(suite.recordID, -30, "2025/1/2 下午3:00:00", "user@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(90))

	quantity, err := suite.repo.AdjustQuantity(suite.context, suite.recordID, -30, "2025/1/2 下午3:00:00", "user@example.com")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 90, quantity)
}

func (suite *RecordRepoTestSuite) TestAdjustQuantity_GuardBlocksNegative() {
	suite.mock.ExpectQuery(`
		UPDATE records
		SET quantity = quantity \+ \$2, last_updated = \$3, last_editor = \$4
		WHERE id = \$1 AND quantity \+ \$2 >= 0
		RETURNING quantity
	`).WithArgs(suite.recordID, -500, "2025/1/2 下午3:00:00", "user@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.AdjustQuantity(suite.context, suite.recordID, -500, "2025/1/2 下午3:00:00", "user@example.com")
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *RecordRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM records WHERE id = \$1`).
		WithArgs(suite.recordID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.recordID)
	assert.NoError(suite.T(), err)
}

func (suite *RecordRepoTestSuite) TestSetPhotos_Success() {
	photos := []string{"https://img.example/a-001.jpg", "https://img.example/a-001-front.jpg"}

	suite.mock.ExpectExec(`
		UPDATE records
		SET photos = \$2, last_updated = \$3, last_editor = \$4
		WHERE id = \$1
	`).WithArgs(suite.recordID, photos, "2025/1/2 下午3:00:00", "user@example.com").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SetPhotos(suite.context, suite.recordID, photos, "2025/1/2 下午3:00:00", "user@example.com")
	assert.NoError(suite.T(), err)
}

func (suite *RecordRepoTestSuite) TestApplyBatch_CommitsAllWrites() {
	insert := sampleRecord(uuid.New())
	update := sampleRecord(uuid.New())
	update.Quantity = 77
	deleteID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO records`).
		WithArgs(insert.ID, insert.PartNumber, insert.Name, insert.Size, insert.Category,
			insert.Material, insert.Spec, insert.Color, insert.Remarks,
			insert.Quantity, insert.SafetyStock, insert.Photos,
			insert.LastUpdated, insert.LastEditor).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE records`).
		WithArgs(update.ID, update.PartNumber, update.Name, update.Size, update.Category,
			update.Material, update.Spec, update.Color, update.Remarks,
			update.Quantity, update.SafetyStock, update.Photos,
			update.LastUpdated, update.LastEditor).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`DELETE FROM records WHERE id = ANY\(\$1\)`).
		WithArgs([]uuid.UUID{deleteID}).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.ApplyBatch(suite.context, models.BatchWrite{
		Inserts:   []*models.Record{insert},
		Updates:   []*models.Record{update},
		DeleteIDs: []uuid.UUID{deleteID},
	})
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *RecordRepoTestSuite) TestApplyBatch_RollsBackOnFailure() {
	insert := sampleRecord(uuid.New())

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO records`).
		WithArgs(insert.ID, insert.PartNumber, insert.Name, insert.Size, insert.Category,
			insert.Material, insert.Spec, insert.Color, insert.Remarks,
			insert.Quantity, insert.SafetyStock, insert.Photos,
			insert.LastUpdated, insert.LastEditor).
		WillReturnError(errors.New("duplicate key"))
	suite.mock.ExpectRollback()

	err := suite.repo.ApplyBatch(suite.context, models.BatchWrite{Inserts: []*models.Record{insert}})
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "duplicate key")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *RecordRepoTestSuite) TestApplyBatch_EmptyBatchCommits() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectCommit()

	err := suite.repo.ApplyBatch(suite.context, models.BatchWrite{})
	assert.NoError(suite.T(), err)
}
