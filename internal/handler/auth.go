package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-auth/internal/auth"
	"github.com/iliyamo/todo-auth/internal/middleware"
	"github.com/iliyamo/todo-auth/internal/model"
)

// AuthHandler exposes login, registration and refresh-token rotation over
// HTTP. All credential logic lives in the auth service; the handler only
// binds requests and maps core errors to status codes.
type AuthHandler struct {
	Auth *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler { return &AuthHandler{Auth: svc} }

// ----- DTOs -----

type credentialsReq struct {
	Name        string `json:"name"`
	RawPassword string `json:"raw_password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type userResp struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Permissions []model.Permission `json:"permissions"`
}

// Login handles POST /api/auth/login and returns a token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.RawPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/raw_password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pair, err := h.Auth.Login(ctx, req.Name, req.RawPassword)
	if err != nil {
		if errors.Is(err, auth.ErrWrongCredentials) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return c.JSON(http.StatusOK, pair)
}

// Register handles POST /api/auth/register. Self-service registration
// always grants the default read/write permissions; elevated permissions
// only exist on the admin path.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.RawPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/raw_password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Auth.Register(ctx, req.Name, req.RawPassword, model.DefaultPermissions())
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, userResp{ID: user.ID, Name: user.Name, Permissions: user.Permissions})
}

// Refresh handles POST /api/auth/refresh_token: it rotates the presented
// refresh token into a new pair. A replayed token is rejected with the
// number of descendant tokens that were invalidated in response.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pair, err := h.Auth.Rotate(ctx, strings.TrimSpace(req.RefreshToken))
	if err != nil {
		var rejected *auth.RefreshRejectedError
		switch {
		case errors.As(err, &rejected):
			return c.JSON(http.StatusForbidden, echo.Map{
				"error":       rejected.Error(),
				"invalidated": rejected.Invalidated,
			})
		case errors.Is(err, auth.ErrRefreshExpired), errors.Is(err, auth.ErrInvalidUser):
			return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "refresh failed"})
		}
	}
	return c.JSON(http.StatusOK, pair)
}

// Secret handles GET /api/secret and echoes the caller's name claim. It
// exists as a minimal authenticated probe endpoint.
func (h *AuthHandler) Secret(c echo.Context) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"name": claims.Name})
}
