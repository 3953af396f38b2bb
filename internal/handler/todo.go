package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-auth/internal/middleware"
	"github.com/iliyamo/todo-auth/internal/model"
	"github.com/iliyamo/todo-auth/internal/repository"
)

// TodoHandler serves the per-user todo resource. Every operation is scoped
// to the authenticated owner taken from the access-token claims.
type TodoHandler struct {
	Todos *repository.TodoRepo
}

func NewTodoHandler(todos *repository.TodoRepo) *TodoHandler { return &TodoHandler{Todos: todos} }

type todoCreateReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type todoUpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}

// callerID extracts the authenticated user's id from the claims stored by
// the Authorize middleware.
func callerID(c echo.Context) (int64, error) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return 0, echo.ErrUnauthorized
	}
	return claims.UserID()
}

// List handles GET /api/todos with offset/limit paging.
func (h *TodoHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	offset, limit := pageParams(c)
	todos, err := h.Todos.ListForUser(c.Request().Context(), userID, offset, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, todos)
}

// Create handles POST /api/todos. Names are unique per owner.
func (h *TodoHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req todoCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	todo := &model.Todo{Name: req.Name, Description: req.Description, Owner: userID}
	if err := h.Todos.Insert(c.Request().Context(), todo); err != nil {
		if err == repository.ErrTodoNameTaken {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create todo"})
	}
	c.Response().Header().Set("Location", fmt.Sprintf("/api/todos/%d", todo.ID))
	return c.JSON(http.StatusCreated, todo)
}

// Get handles GET /api/todos/:id.
func (h *TodoHandler) Get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	todo, err := h.Todos.FindByIDAndOwner(c.Request().Context(), id, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if todo == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusOK, todo)
}

// Update handles PUT /api/todos/:id with partial field updates.
func (h *TodoHandler) Update(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req todoUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	todo, err := h.Todos.FindByIDAndOwner(c.Request().Context(), id, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if todo == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		todo.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.Done != nil {
		todo.Done = *req.Done
	}

	if err := h.Todos.Update(c.Request().Context(), todo); err != nil {
		if err == repository.ErrTodoNameTaken {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, todo)
}

// Delete handles DELETE /api/todos/:id.
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	deleted, err := h.Todos.DeleteByIDAndOwner(c.Request().Context(), id, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if deleted == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.NoContent(http.StatusOK)
}

// pageParams parses offset/limit query parameters with the defaults used
// across list endpoints.
func pageParams(c echo.Context) (offset, limit int) {
	offset, limit = 0, 100
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return offset, limit
}
