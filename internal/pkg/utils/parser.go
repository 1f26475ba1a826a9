package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

type AccessClaims struct {
	UserID string
	Role   string
}

// ParseAccessToken verifies an HS256 token issued by the auth service and
// returns its subject and role claims.
func ParseAccessToken(tokenString, secret string) (*AccessClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	subject, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if subject == "" || role == "" {
		return nil, errors.New("token is missing subject or role")
	}

	return &AccessClaims{UserID: subject, Role: role}, nil
}
