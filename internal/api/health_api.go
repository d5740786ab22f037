package api

import (
	"go-dutyleave/internal/config"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	config *config.Config
}

func NewHealthApi(config *config.Config) *HealthApi {
	return &HealthApi{config: config}
}

// Setup registers health check route
func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.HealthCheck)
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Check if the server is up
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthApi) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"storage": h.config.Storage,
	})
}
