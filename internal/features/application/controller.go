package application

import (
	"errors"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ApplicationController struct {
	Service  ApplicationService
	validate *validator.Validate
}

func NewApplicationController(service ApplicationService) *ApplicationController {
	return &ApplicationController{
		Service:  service,
		validate: validator.New(),
	}
}

// Submit godoc
// @Summary Submit a duty leave application
// @Description Create a new application; requires attendance of at least 75%
// @Tags applications
// @Accept json
// @Produce json
// @Param application body SubmitInput true "Application"
// @Success 200 {object} Application
// @Failure 400 {object} map[string]string "Not eligible or invalid payload"
// @Router /api/applications [post]
func (c *ApplicationController) Submit(ctx *fiber.Ctx) error {
	actor := middleware.Claims(ctx).Actor()

	var input SubmitInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := c.validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	app, err := c.Service.Submit(ctx.UserContext(), actor, input)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(app)
}

// ListMine godoc
// @Summary List the caller's applications
// @Description All applications submitted by the authenticated student, newest first
// @Tags applications
// @Produce json
// @Success 200 {array} Application
// @Router /api/applications/my [get]
func (c *ApplicationController) ListMine(ctx *fiber.Ctx) error {
	actor := middleware.Claims(ctx).Actor()

	apps, err := c.Service.ListForStudent(ctx.UserContext(), actor)
	if err != nil {
		return respondError(ctx, err)
	}
	if apps == nil {
		apps = []Application{}
	}
	return ctx.JSON(apps)
}

// ListPending godoc
// @Summary List applications awaiting the caller's decision
// @Description Pending work for the authenticated approver, scoped by stage and department
// @Tags applications
// @Produce json
// @Success 200 {array} Application
// @Router /api/applications/pending [get]
func (c *ApplicationController) ListPending(ctx *fiber.Ctx) error {
	actor := middleware.Claims(ctx).Actor()

	apps, err := c.Service.ListPendingFor(ctx.UserContext(), actor)
	if err != nil {
		return respondError(ctx, err)
	}
	if apps == nil {
		apps = []Application{}
	}
	return ctx.JSON(apps)
}

// ListAll godoc
// @Summary List application history
// @Description All applications visible to the approver, optionally filtered by status
// @Tags applications
// @Produce json
// @Param status query string false "pending|approved|rejected"
// @Success 200 {array} Application
// @Router /api/applications/all [get]
func (c *ApplicationController) ListAll(ctx *fiber.Ctx) error {
	actor := middleware.Claims(ctx).Actor()
	status := common_models.ApprovalStatus(ctx.Query("status"))

	apps, err := c.Service.ListAllFor(ctx.UserContext(), actor, status)
	if err != nil {
		return respondError(ctx, err)
	}
	if apps == nil {
		apps = []Application{}
	}
	return ctx.JSON(apps)
}

// Decide godoc
// @Summary Approve or reject an application
// @Description Record the authenticated approver's decision for their stage
// @Tags applications
// @Accept json
// @Produce json
// @Param decision body DecisionInput true "Decision"
// @Success 200 {object} Application
// @Failure 403 {object} map[string]string "Sequencing or authorization failure"
// @Failure 404 {object} map[string]string "Application not found"
// @Router /api/applications/approve [post]
func (c *ApplicationController) Decide(ctx *fiber.Ctx) error {
	actor := middleware.Claims(ctx).Actor()

	var input DecisionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := c.validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	app, err := c.Service.Decide(ctx.UserContext(), actor, input)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(app)
}

// respondError maps the core error taxonomy onto HTTP codes. Sequencing
// violations are surfaced with their own message so the caller can explain
// why the action is blocked.
func respondError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrStageNotRequired),
		errors.Is(err, ErrPriorStageNotApproved):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotEligible), errors.Is(err, ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
