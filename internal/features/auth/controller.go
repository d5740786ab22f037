package auth

import (
	"errors"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/features/student"
	"go-dutyleave/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student faculty"`
}

type AuthController struct {
	Service        AuthService
	StudentService student.StudentService
	validate       *validator.Validate
}

func NewAuthController(service AuthService, studentService student.StudentService) *AuthController {
	return &AuthController{
		Service:        service,
		StudentService: studentService,
		validate:       validator.New(),
	}
}

// Login godoc
// @Summary Authenticate a student or faculty member
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var req LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token, user, err := c.Service.Login(ctx.UserContext(), req.Email, req.Password, common_models.ActorRole(req.Role))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// RegisterStudent godoc
// @Summary Register a single student account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body student.ImportRow true "Student details"
// @Success 201 {object} map[string]string
// @Router /api/auth/register-student [post]
func (c *AuthController) RegisterStudent(ctx *fiber.Ctx) error {
	var row student.ImportRow
	if err := ctx.BodyParser(&row); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	st, err := c.StudentService.Register(ctx.UserContext(), row)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Student registered successfully",
		"id":      st.ID,
	})
}

// Me godoc
// @Summary Return the authenticated user's identity
// @Tags auth
// @Produce json
// @Success 200 {object} UserInfo
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	return ctx.JSON(UserInfo{
		ID:          claims.UserID,
		Name:        claims.Name,
		Email:       claims.Email,
		Role:        string(claims.Role),
		FacultyType: string(claims.Stage),
		Department:  claims.Department,
		Division:    claims.Division,
		RollNo:      claims.RollNo,
	})
}
