package application

import (
	"go-dutyleave/internal/config"
	"go-dutyleave/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ApplicationApi struct {
	controller *ApplicationController
	config     *config.Config
}

func NewApplicationApi(controller *ApplicationController, config *config.Config) *ApplicationApi {
	return &ApplicationApi{
		controller: controller,
		config:     config,
	}
}

func (h *ApplicationApi) Setup(app *fiber.App) {
	applications := app.Group("/api/applications", middleware.AuthMiddleware(h.config.SkipAuth))

	applications.Post("/", middleware.RequireStudent(), h.controller.Submit)
	applications.Get("/my", middleware.RequireStudent(), h.controller.ListMine)
	applications.Get("/pending", middleware.RequireFaculty(), h.controller.ListPending)
	applications.Get("/all", middleware.RequireFaculty(), h.controller.ListAll)
	applications.Post("/approve", middleware.RequireFaculty(), h.controller.Decide)
}
