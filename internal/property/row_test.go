package property

import (
	"errors"
	"testing"
)

var testHeader = []string{
	"title", "price", "city", "country", "description",
	"university", "area", "services", "amenities", "roomTypes", "rating",
}

func TestParseRowTrimsAndKeysByHeader(t *testing.T) {
	row, err := ParseRow(2, testHeader, []string{
		"  Cosy Studio ", " 450 ", "Leeds", "UK", "Bright studio",
		"University of Leeds", "Hyde Park", "wifi,cleaning",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if row.Title != "Cosy Studio" {
		t.Errorf("title = %q, want trimmed title", row.Title)
	}
	if row.Price != "450" {
		t.Errorf("price = %q, want %q", row.Price, "450")
	}
	if row.Services != "wifi,cleaning" {
		t.Errorf("services = %q", row.Services)
	}
	// Columns the row does not reach stay empty, not an error
	if row.Amenities != "" || row.Rating != "" {
		t.Errorf("expected empty trailing fields, got %q / %q", row.Amenities, row.Rating)
	}
}

func TestParseRowIgnoresUnknownColumns(t *testing.T) {
	row, err := ParseRow(2, []string{"title", "landlord_notes", "price"}, []string{"Cosy Studio", "call before 5", "450"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if row.Title != "Cosy Studio" || row.Price != "450" {
		t.Errorf("known columns lost: %+v", row)
	}
}

func TestParseRowHeaderCaseInsensitive(t *testing.T) {
	row, err := ParseRow(2, []string{"Title", "ROOMTYPES", "Room Types"}, []string{"Cosy Studio", "Single:350"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if row.RoomTypes != "Single:350" {
		t.Errorf("roomTypes = %q", row.RoomTypes)
	}
}

func TestParseRowWiderThanHeader(t *testing.T) {
	_, err := ParseRow(4, []string{"title"}, []string{"Cosy Studio", "stray cell"})
	var malformed *MalformedRowError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedRowError, got %v", err)
	}
	if malformed.Index != 4 {
		t.Errorf("index = %d, want 4", malformed.Index)
	}
}

func TestParseRowNoHeader(t *testing.T) {
	_, err := ParseRow(2, nil, []string{"Cosy Studio"})
	var malformed *MalformedRowError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedRowError, got %v", err)
	}
}

func TestRowIsEmpty(t *testing.T) {
	row, err := ParseRow(3, testHeader, []string{"", "  ", ""})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !row.IsEmpty() {
		t.Error("expected blank row to be empty")
	}
}
