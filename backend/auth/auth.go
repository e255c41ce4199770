package auth

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	adminEmail        = flag.String("admin_email", os.Getenv("ADMIN_EMAIL"), "Admin login email.")
	adminPasswordHash = flag.String("admin_password_hash", os.Getenv("ADMIN_PASSWORD_HASH"), "bcrypt hash of the admin password.")
	jwtSecret         = flag.String("jwt_secret", os.Getenv("JWT_SECRET"), "HMAC secret for admin tokens.")
	tokenTTL          = flag.Duration("token_ttl", 7*24*time.Hour, "Admin token lifetime.")
)

var ErrUnauthorized = errors.New("unauthorized")

// Login verifies the admin credentials and issues a signed token.
func Login(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrUnauthorized)
	}
	if email != *adminEmail {
		return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*adminPasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  email,
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(*tokenTTL).Unix(),
	})
	return token.SignedString([]byte(*jwtSecret))
}

// ValidateToken parses and verifies a token, returning the subject.
func ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(*jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("%w: missing subject", ErrUnauthorized)
	}
	return sub, nil
}

// Middleware rejects requests without a valid Bearer token before any
// business logic runs.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}
		sub, err := ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("user", sub)
		c.Next()
	}
}

func extractToken(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
