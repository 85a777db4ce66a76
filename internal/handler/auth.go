package handler

import (
	"net/http"
	"time"

	"storefront-client/internal/dto"
	"storefront-client/internal/middleware"
	"storefront-client/internal/model"

	"github.com/labstack/echo/v4"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type AuthHandler struct {
	store     *Store
	jwtSecret string
}

func NewAuthHandler(store *Store, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		store:     store,
		jwtSecret: jwtSecret,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "all fields are required"})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "passwords do not match"})
	}

	h.store.mu.Lock()
	if _, exists := h.store.byEmail[req.Email]; exists {
		h.store.mu.Unlock()
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Message: "email already registered"})
	}
	user := &userRecord{
		User: model.User{
			ID:        h.store.id(),
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
		},
		Password: req.Password,
	}
	h.store.users[user.ID] = user
	h.store.byEmail[user.Email] = user.ID
	h.store.mu.Unlock()

	return h.issue(c, user.ID)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}

	h.store.mu.Lock()
	userID, ok := h.store.byEmail[req.Email]
	var user *userRecord
	if ok {
		user = h.store.users[userID]
	}
	h.store.mu.Unlock()

	if user == nil || user.Password != req.Password {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid credentials"})
	}

	return h.issue(c, user.ID)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}

	userID, err := middleware.ParseRefreshToken(h.jwtSecret, req.Refresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid refresh token"})
	}

	return h.issue(c, userID)
}

func (h *AuthHandler) Me(c echo.Context) error {
	h.store.mu.Lock()
	user, ok := h.store.users[middleware.UserID(c)]
	h.store.mu.Unlock()

	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "user not found"})
	}
	return c.JSON(http.StatusOK, user.User)
}

func (h *AuthHandler) UpdateUser(c echo.Context) error {
	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	user, ok := h.store.users[middleware.UserID(c)]
	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "user not found"})
	}

	delete(h.store.byEmail, user.Email)
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	h.store.byEmail[user.Email] = user.ID

	return c.JSON(http.StatusOK, user.User)
}

func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req dto.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}
	if req.NewPassword != req.ConfirmNewPassword {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "passwords do not match"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	user, ok := h.store.users[middleware.UserID(c)]
	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "user not found"})
	}
	if user.Password != req.PreviousPassword {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "previous password is wrong"})
	}

	user.Password = req.NewPassword
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) issue(c echo.Context, userID int64) error {
	access, refresh, err := middleware.IssuePair(h.jwtSecret, userID, accessTTL, refreshTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "token signing failed"})
	}
	return c.JSON(http.StatusOK, dto.TokenPairResponse{Access: access, Refresh: refresh})
}
