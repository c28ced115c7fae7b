package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

func GenerateToken(identity Identity) (string, error) {
	if identity.UserID == "" {
		return "", errors.New("empty userID passed to GenerateToken")
	}
	if !identity.Role.Valid() {
		return "", errors.New("unknown role passed to GenerateToken")
	}

	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"userID": identity.UserID,
		"email":  identity.Email,
		"role":   string(identity.Role),
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(tokenString string) (Identity, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return Identity{}, err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid token claims")
	}

	userID, _ := claims["userID"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return Identity{UserID: userID, Email: email, Role: Role(role)}, nil
}
