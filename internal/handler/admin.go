package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-auth/internal/auth"
	"github.com/iliyamo/todo-auth/internal/model"
	"github.com/iliyamo/todo-auth/internal/repository"
)

// AdminHandler serves user management under /api/admin. The router guards
// the whole group with the admin permission; handlers assume the caller is
// already authorized.
type AdminHandler struct {
	Auth   *auth.Service
	Users  *repository.UserRepo
	Hasher *auth.Hasher
}

func NewAdminHandler(svc *auth.Service, users *repository.UserRepo, hasher *auth.Hasher) *AdminHandler {
	return &AdminHandler{Auth: svc, Users: users, Hasher: hasher}
}

type adminUserReq struct {
	Name        string             `json:"name"`
	RawPassword string             `json:"raw_password"`
	Permissions []model.Permission `json:"permissions"`
}

// ListUsers handles GET /api/admin/users with offset/limit paging and an
// optional exact username_filter.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	if filter := strings.TrimSpace(c.QueryParam("username_filter")); filter != "" {
		user, err := h.Users.FindByName(c.Request().Context(), filter)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		users := []userResp{}
		if user != nil {
			users = append(users, userResp{ID: user.ID, Name: user.Name, Permissions: user.Permissions})
		}
		return c.JSON(http.StatusOK, users)
	}

	offset, limit := pageParams(c)
	users, err := h.Users.List(c.Request().Context(), offset, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, userResp{ID: u.ID, Name: u.Name, Permissions: u.Permissions})
	}
	return c.JSON(http.StatusOK, out)
}

// CreateUser handles POST /api/admin/users. Unlike self-service
// registration, the admin path may grant any permission set.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req adminUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.RawPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/raw_password required"})
	}
	perms := req.Permissions
	if len(perms) == 0 {
		perms = model.DefaultPermissions()
	}

	user, err := h.Auth.Register(c.Request().Context(), req.Name, req.RawPassword, perms)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, userResp{ID: user.ID, Name: user.Name, Permissions: user.Permissions})
}

// GetUser handles GET /api/admin/users/:id.
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	user, err := h.Users.FindByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusOK, userResp{ID: user.ID, Name: user.Name, Permissions: user.Permissions})
}

// UpdateUser handles PUT /api/admin/users/:id. A provided raw password is
// re-hashed; empty fields keep their stored values.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req adminUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, err := h.Users.FindByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if req.RawPassword != "" {
		hash, err := h.Hasher.Hash(req.RawPassword)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
		}
		user.Password = hash
	}
	if len(req.Permissions) > 0 {
		user.Permissions = req.Permissions
	}

	if err := h.Users.Update(c.Request().Context(), user); err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, userResp{ID: user.ID, Name: user.Name, Permissions: user.Permissions})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	deleted, err := h.Users.Delete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if deleted == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no user deleted"})
	}
	return c.NoContent(http.StatusOK)
}
