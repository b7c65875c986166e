package property

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"unilodge-backend/internal/media"

	"github.com/gofiber/fiber/v2"
)

// Cloudinary-hosted images per property, matching the upload widget limit
const maxImages = 5

// ImageStore is what the handlers need from the media host.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, filename string) (url, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}

// POST /api/properties/upload
// Multipart XLSX bulk import. Row failures are reported in the response, a
// storage outage aborts the batch and returns whatever was imported so far.
func UploadPropertiesHandler(importer *Importer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files are supported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file")
		}
		defer file.Close()

		outcome, err := importer.Import(c.Context(), file)
		if err != nil {
			if outcome != nil && outcome.Incomplete {
				log.Printf("Bulk import aborted after %d rows: %v", outcome.Attempted, err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"message": "Import aborted, storage unavailable",
					"outcome": outcome,
				})
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"message": "Properties uploaded",
			"outcome": outcome,
		})
	}
}

// POST /api/property
// Multipart create: 1-5 images plus JSON-encoded list fields.
func CreatePropertyHandler(repo *Repository, store ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Expected multipart form data")
		}

		files := form.File["images"]
		if len(files) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "At least one image is required")
		}
		if len(files) > maxImages {
			return fiber.NewError(fiber.StatusBadRequest, "At most 5 images are allowed")
		}

		row := Row{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Price:       strings.TrimSpace(c.FormValue("price")),
			City:        strings.TrimSpace(c.FormValue("city")),
			Country:     strings.TrimSpace(c.FormValue("country")),
			Description: strings.TrimSpace(c.FormValue("description")),
			University:  strings.TrimSpace(c.FormValue("university")),
			Area:        strings.TrimSpace(c.FormValue("area")),
			Rating:      strings.TrimSpace(c.FormValue("rating")),
		}

		record, err := NewMapper(repo).Map(c.Context(), row)
		if err != nil {
			return toFiberError(err)
		}

		// List fields arrive as JSON on this path, unlike the spreadsheet
		if err := decodeJSONField(c.FormValue("services"), &record.Services); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "services must be a JSON array of strings")
		}
		if err := decodeJSONField(c.FormValue("amenities"), &record.Amenities); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "amenities must be a JSON array")
		}
		if err := decodeJSONField(c.FormValue("roomTypes"), &record.RoomTypes); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "roomTypes must be a JSON array")
		}

		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not read uploaded image")
			}
			url, _, err := store.UploadImage(c.Context(), f, fh.Filename)
			f.Close()
			if err != nil {
				log.Printf("Image upload failed: %v", err)
				return fiber.NewError(fiber.StatusBadGateway, "Image upload failed")
			}
			record.Images = append(record.Images, url)
		}

		if err := repo.Create(c.Context(), record); err != nil {
			return toFiberError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "Property created successfully",
			"property": record,
		})
	}
}

// PUT /api/property/:id
// Field merge; uploaded images append unless replace_images=true.
func UpdatePropertyHandler(repo *Repository, store ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		record, err := repo.ByID(c.Context(), id)
		if err != nil {
			return toFiberError(err)
		}

		if v := strings.TrimSpace(c.FormValue("title")); v != "" {
			record.Title = v
		}
		if v := strings.TrimSpace(c.FormValue("city")); v != "" {
			record.City = v
		}
		if v := strings.TrimSpace(c.FormValue("country")); v != "" {
			record.Country = v
		}
		if v := strings.TrimSpace(c.FormValue("description")); v != "" {
			record.Description = v
		}
		if v := strings.TrimSpace(c.FormValue("university")); v != "" {
			record.University = v
		}
		if v := strings.TrimSpace(c.FormValue("area")); v != "" {
			record.Area = v
		}
		if v := strings.TrimSpace(c.FormValue("price")); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil || price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "price must be a non-negative number")
			}
			record.Price = price
		}
		if v := strings.TrimSpace(c.FormValue("rating")); v != "" {
			rating, err := strconv.ParseFloat(v, 64)
			if err != nil || rating < 1 || rating > 5 {
				return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
			}
			record.Rating = rating
		}
		if err := decodeJSONField(c.FormValue("services"), &record.Services); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "services must be a JSON array of strings")
		}
		if err := decodeJSONField(c.FormValue("amenities"), &record.Amenities); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "amenities must be a JSON array")
		}
		if err := decodeJSONField(c.FormValue("roomTypes"), &record.RoomTypes); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "roomTypes must be a JSON array")
		}

		if form, err := c.MultipartForm(); err == nil {
			files := form.File["images"]
			if len(files) > maxImages {
				return fiber.NewError(fiber.StatusBadRequest, "At most 5 images are allowed")
			}
			if len(files) > 0 {
				urls := make([]string, 0, len(files))
				for _, fh := range files {
					f, err := fh.Open()
					if err != nil {
						return fiber.NewError(fiber.StatusInternalServerError, "Could not read uploaded image")
					}
					url, _, err := store.UploadImage(c.Context(), f, fh.Filename)
					f.Close()
					if err != nil {
						log.Printf("Image upload failed: %v", err)
						return fiber.NewError(fiber.StatusBadGateway, "Image upload failed")
					}
					urls = append(urls, url)
				}
				if c.FormValue("replace_images") == "true" {
					record.Images = urls
				} else {
					record.Images = append(record.Images, urls...)
				}
			}
		}

		if err := repo.Save(c.Context(), record); err != nil {
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"message":  "Property updated successfully",
			"property": record,
		})
	}
}

// DELETE /api/property/:id
// Removes the record and its hosted images. Images that could not be deleted
// are reported back, not just logged.
func DeletePropertyHandler(repo *Repository, store ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		record, err := repo.ByID(c.Context(), id)
		if err != nil {
			return toFiberError(err)
		}

		failedImages := []fiber.Map{}
		for _, url := range record.Images {
			publicID := media.PublicIDFromURL(url)
			if publicID == "" {
				failedImages = append(failedImages, fiber.Map{
					"image":  url,
					"reason": "not a recognizable media store URL",
				})
				continue
			}
			if err := store.Delete(c.Context(), publicID); err != nil {
				log.Printf("Could not delete image %s: %v", publicID, err)
				failedImages = append(failedImages, fiber.Map{
					"image":  url,
					"reason": err.Error(),
				})
			}
		}

		if err := repo.Delete(c.Context(), id); err != nil {
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"message":                "Property and images deleted",
			"failed_image_deletions": failedImages,
		})
	}
}

// GET /api/properties
func ListPropertiesHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := repo.Query(c.Context(), Filters{
			Page:  c.QueryInt("page", 1),
			Limit: c.QueryInt("limit", defaultLimit),
		})
		if err != nil {
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"message":    "Properties retrieved successfully",
			"properties": page.Records,
			"pagination": fiber.Map{"total": page.Total, "page": page.Page, "limit": page.Limit},
		})
	}
}

// GET /api/properties/filter
func FilterPropertiesHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		minPrice, err := parsePriceBound(c.Query("minPrice"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "minPrice must be a number")
		}
		maxPrice, err := parsePriceBound(c.Query("maxPrice"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "maxPrice must be a number")
		}

		page, err := repo.Query(c.Context(), Filters{
			Page:     c.QueryInt("page", 1),
			Limit:    c.QueryInt("limit", defaultLimit),
			Country:  strings.TrimSpace(c.Query("country")),
			City:     strings.TrimSpace(c.Query("city")),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
			Search:   strings.TrimSpace(c.Query("search")),
		})
		if err != nil {
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"message":    "Properties retrieved successfully",
			"properties": page.Records,
			"pagination": fiber.Map{"total": page.Total, "page": page.Page, "limit": page.Limit},
		})
	}
}

// GET /api/properties/search?q=
func SearchPropertiesHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		term := strings.TrimSpace(c.Query("q"))
		if term == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Search term is required")
		}

		records, err := repo.Search(c.Context(), term)
		if err != nil {
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"message":    "Properties retrieved successfully",
			"properties": records,
		})
	}
}

// GET /api/property?title=
func SearchByTitleHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := strings.TrimSpace(c.Query("title"))
		if title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Property title is required")
		}

		records, err := repo.SearchByTitle(c.Context(), title)
		if err != nil {
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"message":    "Properties fetched successfully",
			"properties": records,
		})
	}
}

// GET /api/property/:id
// Fetch plus the read-triggered view increment.
func GetPropertyHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		record, err := repo.ByID(c.Context(), id)
		if err != nil {
			return toFiberError(err)
		}

		IncrementViews(record, time.Now())
		if err := repo.SaveViews(c.Context(), record); err != nil {
			// The page is still served; a lost view is tolerable
			log.Printf("Could not persist view count for property %d: %v", id, err)
		}

		return c.JSON(fiber.Map{
			"message":  "Property retrieved successfully",
			"property": record,
		})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid property id")
	}
	return uint(id), nil
}

func parsePriceBound(raw string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// decodeJSONField leaves dst untouched when the form value is absent.
func decodeJSONField(raw string, dst interface{}) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func toFiberError(err error) error {
	var missing *MissingFieldError
	var invalid *InvalidFieldError
	var persistence *PersistenceError

	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "No properties found")
	case errors.As(err, &missing), errors.As(err, &invalid):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &persistence):
		if !persistence.Unavailable {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		log.Printf("Storage error: %v", err)
		return fiber.NewError(fiber.StatusServiceUnavailable, "Storage unavailable")
	default:
		log.Printf("Unexpected error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Server error")
	}
}
