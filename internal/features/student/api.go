package student

import (
	"go-dutyleave/internal/config"
	"go-dutyleave/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type StudentApi struct {
	controller *StudentController
	config     *config.Config
}

func NewStudentApi(controller *StudentController, config *config.Config) *StudentApi {
	return &StudentApi{
		controller: controller,
		config:     config,
	}
}

func (h *StudentApi) Setup(app *fiber.App) {
	students := app.Group("/api/students",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequireFaculty())

	students.Get("/", h.controller.ListStudents)
	students.Post("/bulk-import", h.controller.BulkImport)

	attendance := app.Group("/api/attendance",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequireFaculty())

	attendance.Post("/upload", h.controller.UploadAttendance)
}
