package property

import (
	"context"
	"strconv"
	"strings"
	"time"

	"unilodge-backend/internal/models"
)

// Mapper turns one parsed Row into a persistable Property. It is pure except
// for the slug-uniqueness check against storage.
type Mapper struct {
	slugs SlugChecker
	now   func() time.Time
}

func NewMapper(slugs SlugChecker) *Mapper {
	return &Mapper{slugs: slugs, now: time.Now}
}

func (m *Mapper) Map(ctx context.Context, row Row) (*models.Property, error) {
	required := []struct {
		field string
		value string
	}{
		{"title", row.Title},
		{"city", row.City},
		{"country", row.Country},
		{"description", row.Description},
		{"university", row.University},
		{"area", row.Area},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, &MissingFieldError{Field: r.field}
		}
	}

	price, err := strconv.ParseFloat(row.Price, 64)
	if err != nil || price < 0 {
		return nil, &InvalidFieldError{Field: "price", Value: row.Price}
	}

	var rating float64
	if row.Rating != "" {
		rating, err = strconv.ParseFloat(row.Rating, 64)
		if err != nil || rating < 1 || rating > 5 {
			return nil, &InvalidFieldError{Field: "rating", Value: row.Rating}
		}
	}

	amenities, err := DecodeAmenities(row.Amenities)
	if err != nil {
		return nil, err
	}

	roomTypes, err := DecodeRoomTypes(row.RoomTypes)
	if err != nil {
		return nil, err
	}

	slug, err := UniqueSlug(ctx, m.slugs, row.Title, m.now())
	if err != nil {
		return nil, err
	}

	return &models.Property{
		Slug:        slug,
		Title:       row.Title,
		Price:       price,
		City:        row.City,
		Country:     row.Country,
		Description: row.Description,
		University:  row.University,
		Area:        row.Area,
		Images:      []string{},
		Services:    SplitList(row.Services),
		Amenities:   amenities,
		RoomTypes:   roomTypes,
		Rating:      rating,
	}, nil
}

// SplitList splits a comma-separated cell into trimmed tokens, dropping
// empties. An absent cell yields an empty list, not an error.
func SplitList(s string) []string {
	out := []string{}
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// DecodeAmenities decodes the compound cell format
// "Kitchen:oven,fridge;Bathroom:shower" into amenity groups.
func DecodeAmenities(s string) ([]models.AmenityGroup, error) {
	groups := []models.AmenityGroup{}
	if strings.TrimSpace(s) == "" {
		return groups, nil
	}

	for _, category := range strings.Split(s, ";") {
		if strings.TrimSpace(category) == "" {
			continue
		}
		title, items, ok := strings.Cut(category, ":")
		if !ok {
			return nil, &InvalidFieldError{Field: "amenities", Value: s}
		}
		groups = append(groups, models.AmenityGroup{
			Title: strings.TrimSpace(title),
			Items: SplitList(items),
		})
	}
	return groups, nil
}

// DecodeRoomTypes decodes "Single:350;Shared:220" into room types. The price
// segment must parse as a non-negative number.
func DecodeRoomTypes(s string) ([]models.RoomType, error) {
	types := []models.RoomType{}
	if strings.TrimSpace(s) == "" {
		return types, nil
	}

	for _, entry := range strings.Split(s, ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		title, rawPrice, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, &InvalidFieldError{Field: "roomTypes", Value: s}
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
		if err != nil || price < 0 {
			return nil, &InvalidFieldError{Field: "roomTypes", Value: s}
		}
		types = append(types, models.RoomType{
			Title: strings.TrimSpace(title),
			Price: price,
		})
	}
	return types, nil
}
