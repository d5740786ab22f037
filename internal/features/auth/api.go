package auth

import (
	"go-dutyleave/internal/config"
	"go-dutyleave/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) *AuthApi {
	return &AuthApi{
		controller: controller,
		config:     config,
	}
}

func (h *AuthApi) Setup(app *fiber.App) {
	group := app.Group("/api/auth")

	group.Post("/login", h.controller.Login)
	group.Post("/register-student", h.controller.RegisterStudent)
	group.Get("/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Me)
}
