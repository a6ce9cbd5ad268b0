package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/chamado-tracker/internal/domain"
)

// SheetName is the worksheet holding archived tickets.
const SheetName = "Archived Tickets"

var columns = []string{
	"id", "sector", "user", "responsible", "equipment",
	"problemDescription", "status", "resolutionComment", "openedAt", "closedAt",
}

// Sink persists an archived ticket partition as a dated tabular document.
type Sink interface {
	Write(date time.Time, tickets []domain.Ticket) (string, error)
}

// XLSXSink writes one spreadsheet per archival cycle into a dedicated
// directory. A second write on the same calendar date overwrites the first.
type XLSXSink struct {
	dir string
}

// NewXLSXSink creates the sink, ensuring the archive directory exists.
func NewXLSXSink(dir string) (*XLSXSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir %s: %w", dir, err)
	}
	return &XLSXSink{dir: dir}, nil
}

// FileName returns the archive file name for the given calendar date.
func FileName(date time.Time) string {
	return fmt.Sprintf("backup_chamados_%s.xlsx", date.Format("2006-01-02"))
}

// Write stores the tickets, one row each under a header row, and returns the
// file path.
func (s *XLSXSink) Write(date time.Time, tickets []domain.Ticket) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return "", err
	}
	for i, t := range tickets {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{
			t.ID,
			t.Sector,
			t.User,
			t.Responsible,
			t.Equipment,
			t.ProblemDescription,
			string(t.Status),
			t.ResolutionComment,
			t.OpenedAt.Format(time.RFC3339),
			formatClosedAt(t.ClosedAt),
		}); err != nil {
			return "", err
		}
	}

	path := filepath.Join(s.dir, FileName(date))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save archive %s: %w", path, err)
	}
	return path, nil
}

func formatClosedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
