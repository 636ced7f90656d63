package security

import (
	"errors"
	"time"

	"isiboard/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

func GenerateToken(adminID, role string) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": adminID,
		"role":     role,
		"exp":      time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":      time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, can be used in middleware or services
func GetAdminIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["admin_id"].(string)
	if !ok {
		return "", errors.New("admin_id claim is missing or not a string")
	}
	return id, nil
}

func GetRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}
