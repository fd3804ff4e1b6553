package controller

import (
	"ref-intake-be/internal/dto"
	"ref-intake-be/internal/pkg/serverutils"
	"ref-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIntakeController interface {
	RegisterRoutes(r fiber.Router)
	Turn(ctx *fiber.Ctx) error
	UploadAck(ctx *fiber.Ctx) error
}

type intakeController struct {
	intakeService service.IIntakeService
}

func NewIntakeController(intakeService service.IIntakeService) IIntakeController {
	return &intakeController{
		intakeService: intakeService,
	}
}

// Respondent-facing routes; no auth, sessions are anonymous.
func (c *intakeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/intake/v1")
	h.Post("turn", c.Turn)
	h.Post("upload-ack", c.UploadAck)
}

func (c *intakeController) Turn(ctx *fiber.Ctx) error {
	var req dto.TurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.intakeService.Turn(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process turn", res))
}

func (c *intakeController) UploadAck(ctx *fiber.Ctx) error {
	var req dto.UploadAckRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.intakeService.UploadAck(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process upload", res))
}
