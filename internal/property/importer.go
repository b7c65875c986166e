package property

import (
	"context"
	"errors"
	"fmt"
	"io"

	"unilodge-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// Importer drives a whole spreadsheet through parse, map and persist.
type Importer struct {
	repo   *Repository
	mapper *Mapper
}

func NewImporter(repo *Repository) *Importer {
	return &Importer{repo: repo, mapper: NewMapper(repo)}
}

// RowFailure records one row that could not be imported.
type RowFailure struct {
	Index  int    `json:"index"` // 1-based spreadsheet row number
	Title  string `json:"title,omitempty"`
	Reason string `json:"reason"`
}

// ImportOutcome is the per-batch result. Created preserves source row order.
type ImportOutcome struct {
	Created    []models.Property `json:"created"`
	Failures   []RowFailure      `json:"failures"`
	Attempted  int               `json:"attempted"`
	Succeeded  int               `json:"succeeded"`
	Failed     int               `json:"failed"`
	Incomplete bool              `json:"incomplete"`
}

func (o *ImportOutcome) fail(index int, title string, err error) {
	o.Failed++
	o.Failures = append(o.Failures, RowFailure{Index: index, Title: title, Reason: err.Error()})
}

// Import reads the first sheet of an XLSX workbook, expects a header row, and
// imports every data row. A failing row is recorded and the batch continues;
// only storage unavailability aborts, returning the outcome accumulated so
// far together with the error.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*ImportOutcome, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.New("workbook is empty")
	}

	header := rows[0]
	outcome := &ImportOutcome{Created: []models.Property{}, Failures: []RowFailure{}}

	for i := 1; i < len(rows); i++ {
		rowNum := i + 1 // spreadsheet numbering, header is row 1

		row, err := ParseRow(rowNum, header, rows[i])
		if err != nil {
			outcome.Attempted++
			outcome.fail(rowNum, "", err)
			continue
		}
		if row.IsEmpty() {
			continue
		}
		outcome.Attempted++

		record, err := im.mapper.Map(ctx, row)
		if err != nil {
			if fatal := asBatchFatal(err); fatal != nil {
				outcome.Incomplete = true
				return outcome, fatal
			}
			outcome.fail(rowNum, row.Title, err)
			continue
		}

		if err := im.repo.Create(ctx, record); err != nil {
			if fatal := asBatchFatal(err); fatal != nil {
				outcome.Incomplete = true
				return outcome, fatal
			}
			outcome.fail(rowNum, row.Title, err)
			continue
		}

		outcome.Created = append(outcome.Created, *record)
		outcome.Succeeded++
	}

	return outcome, nil
}

// asBatchFatal returns the error when it means the store is unavailable.
func asBatchFatal(err error) error {
	var pe *PersistenceError
	if errors.As(err, &pe) && pe.Unavailable {
		return pe
	}
	return nil
}
