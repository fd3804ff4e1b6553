package controller

import (
	"ref-intake-be/internal/pkg/serverutils"
	"ref-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISubmissionController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Transcript(ctx *fiber.Ctx) error
}

type submissionController struct {
	submissionService service.ISubmissionService
	jwtGuard          fiber.Handler
}

func NewSubmissionController(submissionService service.ISubmissionService, jwtGuard fiber.Handler) ISubmissionController {
	return &submissionController{
		submissionService: submissionService,
		jwtGuard:          jwtGuard,
	}
}

func (c *submissionController) RegisterRoutes(r fiber.Router) {
	adm := r.Group("/admin/v1")
	adm.Use(c.jwtGuard)
	adm.Get("submissions", c.GetAll)
	adm.Get("submissions/:id", c.Show)
	adm.Get("sessions/:id/transcript", c.Transcript)
}

func (c *submissionController) GetAll(ctx *fiber.Ctx) error {
	var formId *uuid.UUID
	if raw := ctx.Query("form_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid form_id filter")
		}
		formId = &id
	}

	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.submissionService.GetAll(ctx.Context(), formId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list submissions", res))
}

func (c *submissionController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid submission id")
	}

	res, err := c.submissionService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show submission", res))
}

func (c *submissionController) Transcript(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.submissionService.Transcript(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show transcript", res))
}
