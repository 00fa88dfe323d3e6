package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	service "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/app"
)

// WorkbookSheet is the sheet the leaderboard is written to.
const WorkbookSheet = "Sheet1"

var workbookHeader = []interface{}{
	"Position", "User", "Total", "Verified", "Completed", "Progressed", "Packs",
}

// WriteWorkbook writes the leaderboard as an .xlsx workbook with one row per
// user.
func WriteWorkbook(w io.Writer, view service.BoardView) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetRow(WorkbookSheet, "A1", &workbookHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, u := range view.Users {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			u.Position, u.User, u.Total,
			len(u.Verified), len(u.Completed), len(u.Progressed), len(u.Packs),
		}
		if err := f.SetSheetRow(WorkbookSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
