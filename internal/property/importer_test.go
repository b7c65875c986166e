package property

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes a single-sheet XLSX with the standard header plus the
// given data rows.
func buildWorkbook(t *testing.T, rows ...[]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{
		"title", "price", "city", "country", "description",
		"university", "area", "services", "amenities", "roomTypes", "rating",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func listingRow(title string, price string) []interface{} {
	return []interface{}{
		title, price, "Leeds", "UK", "Near campus",
		"University of Leeds", "Hyde Park",
		"wifi", "Kitchen:oven", "Single:350", "4",
	}
}

func TestImportAllRowsSucceed(t *testing.T) {
	repo := testRepo(t)
	importer := NewImporter(repo)

	wb := buildWorkbook(t,
		listingRow("First Flat", "100"),
		listingRow("Second Flat", "200"),
		listingRow("Third Flat", "300"),
	)

	outcome, err := importer.Import(context.Background(), wb)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if outcome.Attempted != 3 || outcome.Succeeded != 3 || outcome.Failed != 0 {
		t.Fatalf("counts = %d/%d/%d, want 3/3/0", outcome.Attempted, outcome.Succeeded, outcome.Failed)
	}

	// Success order preserves source order
	for i, want := range []string{"First Flat", "Second Flat", "Third Flat"} {
		if outcome.Created[i].Title != want {
			t.Errorf("created[%d] = %q, want %q", i, outcome.Created[i].Title, want)
		}
	}

	page, err := repo.Query(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("query after import: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("persisted = %d, want 3", page.Total)
	}
}

func TestImportBadRowDoesNotAbortBatch(t *testing.T) {
	repo := testRepo(t)
	importer := NewImporter(repo)

	wb := buildWorkbook(t,
		listingRow("First Flat", "100"),
		listingRow("Broken Flat", "not-a-price"),
		listingRow("Third Flat", "300"),
	)

	outcome, err := importer.Import(context.Background(), wb)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if outcome.Attempted != 3 || outcome.Succeeded != 2 || outcome.Failed != 1 {
		t.Fatalf("counts = %d/%d/%d, want 3/2/1", outcome.Attempted, outcome.Succeeded, outcome.Failed)
	}

	failure := outcome.Failures[0]
	if failure.Index != 3 {
		t.Errorf("failure index = %d, want spreadsheet row 3", failure.Index)
	}
	if failure.Title != "Broken Flat" {
		t.Errorf("failure title = %q", failure.Title)
	}
	if !strings.Contains(failure.Reason, "price") {
		t.Errorf("failure reason %q does not mention the field", failure.Reason)
	}

	if len(outcome.Created) != 2 ||
		outcome.Created[0].Title != "First Flat" ||
		outcome.Created[1].Title != "Third Flat" {
		t.Errorf("created order wrong: %v", outcome.Created)
	}
}

func TestImportMissingFieldIsRowScoped(t *testing.T) {
	repo := testRepo(t)
	importer := NewImporter(repo)

	noCity := listingRow("No City Flat", "100")
	noCity[2] = ""

	wb := buildWorkbook(t, noCity, listingRow("Fine Flat", "200"))

	outcome, err := importer.Import(context.Background(), wb)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if outcome.Succeeded != 1 || outcome.Failed != 1 {
		t.Fatalf("counts = %d succeeded %d failed, want 1/1", outcome.Succeeded, outcome.Failed)
	}
	if !strings.Contains(outcome.Failures[0].Reason, "city") {
		t.Errorf("reason %q does not name the missing field", outcome.Failures[0].Reason)
	}
}

func TestImportSkipsBlankRows(t *testing.T) {
	repo := testRepo(t)
	importer := NewImporter(repo)

	wb := buildWorkbook(t,
		listingRow("First Flat", "100"),
		[]interface{}{"", "", ""},
		listingRow("Third Flat", "300"),
	)

	outcome, err := importer.Import(context.Background(), wb)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if outcome.Attempted != 2 || outcome.Succeeded != 2 {
		t.Errorf("counts = %d/%d, want blank row ignored", outcome.Attempted, outcome.Succeeded)
	}
}

func TestImportDuplicateTitleGetsFreshSlug(t *testing.T) {
	repo := testRepo(t)
	importer := NewImporter(repo)

	wb := buildWorkbook(t, listingRow("Twin Flat", "100"))
	if _, err := importer.Import(context.Background(), wb); err != nil {
		t.Fatalf("first import: %v", err)
	}

	wb = buildWorkbook(t, listingRow("Twin Flat", "150"))
	outcome, err := importer.Import(context.Background(), wb)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if outcome.Succeeded != 1 {
		t.Fatalf("second import did not succeed: %+v", outcome.Failures)
	}

	created := outcome.Created[0]
	if created.Slug == "twin-flat" || !strings.HasPrefix(created.Slug, "twin-flat-") {
		t.Errorf("slug = %q, want disambiguated twin-flat-*", created.Slug)
	}
}

func TestImportStorageOutageAbortsBatch(t *testing.T) {
	repo := testRepo(t)
	importer := NewImporter(repo)

	sqlDB, err := repo.db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.Close()

	wb := buildWorkbook(t,
		listingRow("First Flat", "100"),
		listingRow("Second Flat", "200"),
	)

	outcome, err := importer.Import(context.Background(), wb)
	if err == nil {
		t.Fatal("expected a top-level error when storage is down")
	}
	if outcome == nil || !outcome.Incomplete {
		t.Fatalf("expected incomplete outcome, got %+v", outcome)
	}
	if outcome.Succeeded != 0 {
		t.Errorf("succeeded = %d with storage down", outcome.Succeeded)
	}
}

func TestImportRejectsNonWorkbook(t *testing.T) {
	repo := testRepo(t)
	importer := NewImporter(repo)

	_, err := importer.Import(context.Background(), strings.NewReader("definitely not xlsx"))
	if err == nil {
		t.Fatal("expected error for a non-workbook payload")
	}
}
