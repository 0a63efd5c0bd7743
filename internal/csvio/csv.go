// Package csvio owns the CSV text boundary: RFC-4180 parsing for catalog
// imports and BOM-prefixed export for spreadsheets.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"stockroom/internal/models"
)

// utf8BOM prefixes exported files so spreadsheet applications pick up the
// encoding of the Chinese headers.
const utf8BOM = "\uFEFF"

// ExportHeader is the export column order. The first eleven columns follow
// the import contract exactly, so an exported file can be re-imported; the
// two trailing columns are display-only metadata the importer ignores.
var ExportHeader = []string{
	"料號", "品名", "尺寸", "分類", "材質", "材質規格", "顏色",
	"備註", "庫存數量", "安全庫存", "照片", "最後操作者", "最後更新時間",
}

// TemplateHeader annotates the import columns for the downloadable template.
var TemplateHeader = []string{
	"料號", "品名", "尺寸", "分類(成品/零件)", "材質", "材質規格",
	"顏色(黑色/有色請填色號)", "備註(可空白)", "庫存數量", "安全庫存(預設5000)", "照片(填入網址)",
}

var templateExample = []string{
	"A-001", "範例螺絲A", `5/8"`, "零件", "不鏽鋼", "M5x10", "黑色", "無備註", "100", "5000", "",
}

// ParseRows reads an import file and returns its data rows. The leading BOM
// and the header row are dropped; field counts are not enforced here (the
// import planner skips rows that are too short). Quoted fields may contain
// commas and doubled quotes per RFC 4180.
func ParseRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	// Inch sizes carry bare quotes in hand-edited files.
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}
	// First row is the header.
	return rows[1:], nil
}

// WriteCatalog writes records as a BOM-prefixed CSV in the export column
// order. Callers pass records already sorted for display.
func WriteCatalog(w io.Writer, records []*models.Record) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.PartNumber,
			r.Name,
			r.Size,
			r.Category,
			r.Material,
			r.Spec,
			r.Color,
			r.Remarks,
			strconv.Itoa(r.Quantity),
			strconv.Itoa(r.SafetyStock),
			exportPhoto(r),
			r.LastEditor,
			r.LastUpdated,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTemplate writes the downloadable import template: the annotated
// header plus one example row.
func WriteTemplate(w io.Writer) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(TemplateHeader); err != nil {
		return err
	}
	if err := writer.Write(templateExample); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// exportPhoto emits the cover photo only when it is a re-importable URL;
// inline image data stays out of spreadsheets.
func exportPhoto(r *models.Record) string {
	cover := r.CoverPhoto()
	if strings.HasPrefix(cover, "data:") {
		return ""
	}
	return cover
}
