package testimonial

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"unilodge-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type CreateTestimonialRequest struct {
	Name     string `json:"name"`
	Feedback string `json:"feedback"`
	Email    string `json:"email"`
}

// GET /api/testimonials
func ListTestimonialsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var testimonials []models.Testimonial
		if err := db.Order("created_at").Find(&testimonials).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch testimonials")
		}
		return c.JSON(testimonials)
	}
}

// GET /api/testimonials/search?name=
func SearchTestimonialsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := strings.TrimSpace(c.Query("name"))
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name query parameter is required")
		}

		var testimonials []models.Testimonial
		err := db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
			Order("created_at").
			Find(&testimonials).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error searching testimonials")
		}
		if len(testimonials) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "No testimonials found")
		}

		return c.JSON(testimonials)
	}
}

// POST /api/testimonials
func CreateTestimonialHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTestimonialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Feedback = strings.TrimSpace(body.Feedback)
		body.Email = strings.TrimSpace(body.Email)

		if body.Name == "" || body.Feedback == "" || body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, feedback, and email are required")
		}
		if !emailPattern.MatchString(body.Email) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email format")
		}

		testimonial := models.Testimonial{
			Name:     body.Name,
			Feedback: body.Feedback,
			Email:    body.Email,
		}
		if err := db.Create(&testimonial).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create testimonial")
		}

		return c.Status(fiber.StatusCreated).JSON(testimonial)
	}
}

// DELETE /api/testimonials/:id
func DeleteTestimonialHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid testimonial id")
		}

		res := db.Delete(&models.Testimonial{}, id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete testimonial")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Testimonial not found for the provided ID")
		}

		return c.JSON(fiber.Map{"message": "Testimonial deleted successfully"})
	}
}
