package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Token lifetimes: students sign in daily, admin sessions are long-lived.
const (
	UserTokenTTL  = 24 * time.Hour
	AdminTokenTTL = 30 * 24 * time.Hour
)

type Claims struct {
	SubjectID uint   `json:"subject_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, subjectID uint, email string, role Role, ttl time.Duration) (string, error) {
	claims := &Claims{
		SubjectID: subjectID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
