package auth

import (
	"os"
	"time"

	"github.com/apextradecapital/SONATUR/app/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// defaultAdminPIN is the fallback used while no PIN has been configured.
const defaultAdminPIN = "1306"

func HashPIN(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), 14)
	return string(bytes), err
}

// VerifyPIN checks the submitted passcode against the configured hash,
// falling back to the built-in default when none is set.
func VerifyPIN(pin string, settings *models.SystemSettings) bool {
	if settings.AdminPINHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(settings.AdminPINHash), []byte(pin)) == nil
	}
	return pin == defaultAdminPIN
}

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func getJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "sonatur-portal-secret-key" // Default for development
	}
	return []byte(secret)
}

func GenerateJWT() (string, error) {
	claims := AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "sonatur-portal",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

func ValidateJWT(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return getJWTSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}
