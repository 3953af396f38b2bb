package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-auth/internal/auth"
	"github.com/iliyamo/todo-auth/internal/handler"
	"github.com/iliyamo/todo-auth/internal/middleware"
	"github.com/iliyamo/todo-auth/internal/model"
)

// RegisterRoutes wires up all endpoints. Authentication endpoints live
// under /api/auth and are open; everything else under /api requires a valid
// access token, with per-route permission requirements layered on top.
func RegisterRoutes(e *echo.Echo, svc *auth.Service, a *handler.AuthHandler, t *handler.TodoHandler, adm *handler.AdminHandler) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")

	ag := api.Group("/auth")
	ag.POST("/login", a.Login)
	ag.POST("/register", a.Register)
	ag.POST("/refresh_token", a.Refresh)

	protected := api.Group("", middleware.Authorize(svc))
	protected.GET("/secret", a.Secret)

	todos := protected.Group("/todos")
	todos.GET("", t.List, middleware.RequirePermission(model.PermissionPersonalRead))
	todos.POST("", t.Create, middleware.RequirePermission(model.PermissionPersonalWrite))
	todos.GET("/:id", t.Get, middleware.RequirePermission(model.PermissionPersonalRead))
	todos.PUT("/:id", t.Update, middleware.RequirePermission(model.PermissionPersonalRead, model.PermissionPersonalWrite))
	todos.DELETE("/:id", t.Delete, middleware.RequirePermission(model.PermissionPersonalRead, model.PermissionPersonalWrite))

	admin := protected.Group("/admin", middleware.RequirePermission(model.PermissionAdmin))
	admin.GET("/users", adm.ListUsers)
	admin.POST("/users", adm.CreateUser)
	admin.GET("/users/:id", adm.GetUser)
	admin.PUT("/users/:id", adm.UpdateUser)
	admin.DELETE("/users/:id", adm.DeleteUser)
}
