package middleware

import (
	"net/http"
	"strings"
	"time"

	"storefront-client/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// JWT guards the authenticated routes of the stub backend. Access tokens are
// HS256, subject = user id.
func JWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "missing bearer token"})
			}

			userID, err := ParseAccessToken(secret, token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid or expired token"})
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

func UserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}

// IssuePair mints a fresh access/refresh token pair for the user.
func IssuePair(secret string, userID int64, accessTTL, refreshTTL time.Duration) (access, refresh string, err error) {
	access, err = sign(secret, userID, "access", accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = sign(secret, userID, "refresh", refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func ParseAccessToken(secret, token string) (int64, error) {
	return parse(secret, token, "access")
}

func ParseRefreshToken(secret, token string) (int64, error) {
	return parse(secret, token, "refresh")
}

func sign(secret string, userID int64, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"use": use,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parse(secret, token, use string) (int64, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	if claims["use"] != use {
		return 0, jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, jwt.ErrTokenInvalidSubject
	}
	return int64(sub), nil
}
