package student

import (
	"go-dutyleave/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type StudentController struct {
	Service StudentService
}

func NewStudentController(service StudentService) *StudentController {
	return &StudentController{Service: service}
}

// ListStudents godoc
// @Summary List all students
// @Description Sanitized listing of all students, faculty only
// @Tags students
// @Produce json
// @Success 200 {array} Student
// @Router /api/students [get]
func (c *StudentController) ListStudents(ctx *fiber.Ctx) error {
	students, err := c.Service.List(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(students)
}

// BulkImport godoc
// @Summary Bulk import students
// @Description Import students from a CSV/XLSX file upload or a JSON row array
// @Tags students
// @Accept json
// @Produce json
// @Success 200 {object} BulkResult
// @Router /api/students/bulk-import [post]
func (c *StudentController) BulkImport(ctx *fiber.Ctx) error {
	actor := middleware.Claims(ctx).Actor()

	var rows []ImportRow

	if fileHeader, err := ctx.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to open uploaded file"})
		}
		defer file.Close()

		rows, err = ParseImportFile(file, fileHeader.Filename)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	} else {
		var body struct {
			Students []ImportRow `json:"students"`
		}
		if err := ctx.BodyParser(&body); err != nil || body.Students == nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid data format"})
		}
		rows = body.Students
	}

	result, err := c.Service.BulkImport(ctx.UserContext(), actor, rows)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"message":      "Student import completed",
		"successCount": len(result.Successful),
		"failureCount": len(result.Failed),
		"successful":   result.Successful,
		"failed":       result.Failed,
	})
}

// UploadAttendance godoc
// @Summary Bulk upload attendance percentages
// @Description Update attendance for students by roll number, scoped to the approver's department for CC/HOD
// @Tags students
// @Accept json
// @Produce json
// @Success 200 {object} BulkResult
// @Router /api/attendance/upload [post]
func (c *StudentController) UploadAttendance(ctx *fiber.Ctx) error {
	actor := middleware.Claims(ctx).Actor()

	var body struct {
		AttendanceData []AttendanceRow `json:"attendanceData"`
	}
	if err := ctx.BodyParser(&body); err != nil || body.AttendanceData == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid data format"})
	}

	result, err := c.Service.UploadAttendance(ctx.UserContext(), actor, body.AttendanceData)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"message":      "Attendance upload completed",
		"successCount": len(result.Successful),
		"failureCount": len(result.Failed),
		"successful":   result.Successful,
		"failed":       result.Failed,
	})
}
