package property

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"unilodge-backend/internal/models"
)

func validRow() Row {
	return Row{
		Index:       2,
		Title:       "Cosy Studio",
		Price:       "450",
		City:        "Leeds",
		Country:     "UK",
		Description: "A bright studio near campus",
		University:  "University of Leeds",
		Area:        "Hyde Park",
		Services:    "wifi, cleaning",
		Amenities:   "Kitchen:oven,fridge;Bathroom:shower",
		RoomTypes:   "Single:350;Shared:220",
		Rating:      "4.5",
	}
}

func fixedMapper(slugs SlugChecker) *Mapper {
	m := NewMapper(slugs)
	m.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return m
}

func TestMapValidRow(t *testing.T) {
	m := fixedMapper(fakeSlugs{})

	p, err := m.Map(context.Background(), validRow())
	if err != nil {
		t.Fatalf("map: %v", err)
	}

	if p.Slug != "cosy-studio" {
		t.Errorf("slug = %q, want %q", p.Slug, "cosy-studio")
	}
	if p.Price != 450 {
		t.Errorf("price = %v, want 450", p.Price)
	}
	if p.Rating != 4.5 {
		t.Errorf("rating = %v, want 4.5", p.Rating)
	}
	if !reflect.DeepEqual(p.Services, []string{"wifi", "cleaning"}) {
		t.Errorf("services = %v", p.Services)
	}
	wantAmenities := []models.AmenityGroup{
		{Title: "Kitchen", Items: []string{"oven", "fridge"}},
		{Title: "Bathroom", Items: []string{"shower"}},
	}
	if !reflect.DeepEqual(p.Amenities, wantAmenities) {
		t.Errorf("amenities = %v, want %v", p.Amenities, wantAmenities)
	}
	wantRooms := []models.RoomType{
		{Title: "Single", Price: 350},
		{Title: "Shared", Price: 220},
	}
	if !reflect.DeepEqual(p.RoomTypes, wantRooms) {
		t.Errorf("roomTypes = %v, want %v", p.RoomTypes, wantRooms)
	}
}

func TestMapIsDeterministic(t *testing.T) {
	m := fixedMapper(fakeSlugs{})

	first, err := m.Map(context.Background(), validRow())
	if err != nil {
		t.Fatalf("first map: %v", err)
	}
	second, err := m.Map(context.Background(), validRow())
	if err != nil {
		t.Fatalf("second map: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("mapping the same row twice produced different records")
	}
}

func TestMapMissingRequiredField(t *testing.T) {
	m := fixedMapper(fakeSlugs{})

	for _, field := range []string{"title", "city", "country", "description", "university", "area"} {
		row := validRow()
		switch field {
		case "title":
			row.Title = ""
		case "city":
			row.City = ""
		case "country":
			row.Country = ""
		case "description":
			row.Description = ""
		case "university":
			row.University = ""
		case "area":
			row.Area = ""
		}
		_, err := m.Map(context.Background(), row)
		var missing *MissingFieldError
		if !errors.As(err, &missing) {
			t.Fatalf("%s: expected MissingFieldError, got %v", field, err)
		}
		if missing.Field != field {
			t.Errorf("missing field = %q, want %q", missing.Field, field)
		}
	}
}

func TestMapInvalidPrice(t *testing.T) {
	m := fixedMapper(fakeSlugs{})

	for _, raw := range []string{"", "abc", "-5"} {
		row := validRow()
		row.Price = raw

		_, err := m.Map(context.Background(), row)
		var invalid *InvalidFieldError
		if !errors.As(err, &invalid) {
			t.Fatalf("price %q: expected InvalidFieldError, got %v", raw, err)
		}
		if invalid.Field != "price" {
			t.Errorf("field = %q, want price", invalid.Field)
		}
	}
}

func TestMapInvalidRating(t *testing.T) {
	m := fixedMapper(fakeSlugs{})

	for _, raw := range []string{"0.5", "6", "great"} {
		row := validRow()
		row.Rating = raw

		_, err := m.Map(context.Background(), row)
		var invalid *InvalidFieldError
		if !errors.As(err, &invalid) || invalid.Field != "rating" {
			t.Fatalf("rating %q: expected InvalidFieldError{rating}, got %v", raw, err)
		}
	}
}

func TestMapOptionalListsAbsent(t *testing.T) {
	m := fixedMapper(fakeSlugs{})

	row := validRow()
	row.Services = ""
	row.Amenities = ""
	row.RoomTypes = ""
	row.Rating = ""

	p, err := m.Map(context.Background(), row)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if len(p.Services) != 0 || len(p.Amenities) != 0 || len(p.RoomTypes) != 0 {
		t.Errorf("expected empty lists, got %v / %v / %v", p.Services, p.Amenities, p.RoomTypes)
	}
	if p.Rating != 0 {
		t.Errorf("rating = %v, want 0 for unrated", p.Rating)
	}
}

func TestMapAmenityCategoryWithoutColon(t *testing.T) {
	m := fixedMapper(fakeSlugs{})

	row := validRow()
	row.Amenities = "Kitchen:oven;Bathroom"

	_, err := m.Map(context.Background(), row)
	var invalid *InvalidFieldError
	if !errors.As(err, &invalid) || invalid.Field != "amenities" {
		t.Fatalf("expected InvalidFieldError{amenities}, got %v", err)
	}
}

func TestMapRoomTypeWithBadPrice(t *testing.T) {
	m := fixedMapper(fakeSlugs{})

	for _, raw := range []string{"Single:cheap", "Single:-10", "Single"} {
		row := validRow()
		row.RoomTypes = raw

		_, err := m.Map(context.Background(), row)
		var invalid *InvalidFieldError
		if !errors.As(err, &invalid) || invalid.Field != "roomTypes" {
			t.Fatalf("roomTypes %q: expected InvalidFieldError{roomTypes}, got %v", raw, err)
		}
	}
}

func TestMapSlugCollisionGetsSuffix(t *testing.T) {
	m := fixedMapper(fakeSlugs{"cosy-studio": true})

	p, err := m.Map(context.Background(), validRow())
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if p.Slug != "cosy-studio-1700000000000" {
		t.Errorf("slug = %q, want suffixed slug", p.Slug)
	}
}

func TestDecodeAmenitiesRoundTrip(t *testing.T) {
	got, err := DecodeAmenities("A:x,y;B:z")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []models.AmenityGroup{
		{Title: "A", Items: []string{"x", "y"}},
		{Title: "B", Items: []string{"z"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSplitListDropsEmptyTokens(t *testing.T) {
	got := SplitList(" wifi , , cleaning ,")
	want := []string{"wifi", "cleaning"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
