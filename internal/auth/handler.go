package auth

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"unilodge-backend/internal/config"
	"unilodge-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	University  string `json:"university"`
	Nationality string `json:"nationality"`
	Gender      string `json:"gender"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name         *string             `json:"name"`
	Phone        *string             `json:"phone"`
	University   *string             `json:"university"`
	Nationality  *string             `json:"nationality"`
	Gender       *string             `json:"gender"`
	MoveInDate   *time.Time          `json:"moveInDate"`
	MoveOutDate  *time.Time          `json:"moveOutDate"`
	StayDuration *int                `json:"stayDuration"`
	Guarantors   *[]models.Guarantor `json:"guarantors"`
}

// POST /api/auth/signup
func SignupHandler(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SignupRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
		}
		if !emailPattern.MatchString(body.Email) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email format")
		}
		if len(body.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 6 characters")
		}

		var count int64
		db.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "User already exists")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Phone:        body.Phone,
			University:   body.University,
			Nationality:  body.Nationality,
			Gender:       body.Gender,
			Guarantors:   []models.Guarantor{},
		}
		if err := db.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		token, err := GenerateToken(cfg.JWTSecret, user.ID, user.Email, RoleUser, UserTokenTTL)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate token")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User created successfully",
			"token":   token,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := db.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, user.ID, user.Email, RoleUser, UserTokenTTL)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate token")
		}

		return c.JSON(fiber.Map{
			"message": "Login successful",
			"token":   token,
		})
	}
}

// GET /api/users/:id
func GetUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUserID(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Server error")
		}

		return c.JSON(user)
	}
}

// PUT /api/users/:id
func UpdateUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUserID(c)
		if err != nil {
			return err
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Server error")
		}

		if body.Name != nil {
			user.Name = *body.Name
		}
		if body.Phone != nil {
			user.Phone = *body.Phone
		}
		if body.University != nil {
			user.University = *body.University
		}
		if body.Nationality != nil {
			user.Nationality = *body.Nationality
		}
		if body.Gender != nil {
			user.Gender = *body.Gender
		}
		if body.MoveInDate != nil {
			user.MoveInDate = body.MoveInDate
		}
		if body.MoveOutDate != nil {
			user.MoveOutDate = body.MoveOutDate
		}
		if body.StayDuration != nil {
			if *body.StayDuration < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Stay duration must be at least 1 day")
			}
			user.StayDuration = *body.StayDuration
		}
		if body.Guarantors != nil {
			user.Guarantors = *body.Guarantors
		}

		if err := db.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update user")
		}

		return c.JSON(fiber.Map{
			"message": "User updated successfully",
			"user":    user,
		})
	}
}

// DELETE /api/users/:id
func DeleteUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUserID(c)
		if err != nil {
			return err
		}

		res := db.Delete(&models.User{}, id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		return c.JSON(fiber.Map{"message": "User deleted successfully"})
	}
}

// GET /api/users
func ListUsersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := db.Order("created_at").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Server error")
		}
		if len(users) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "No users found")
		}

		return c.JSON(fiber.Map{"users": users})
	}
}

func parseUserID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	return uint(id), nil
}
