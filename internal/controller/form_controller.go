package controller

import (
	"ref-intake-be/internal/dto"
	"ref-intake-be/internal/pkg/serverutils"
	"ref-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFormController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type formController struct {
	formService service.IFormService
	jwtGuard    fiber.Handler
}

func NewFormController(formService service.IFormService, jwtGuard fiber.Handler) IFormController {
	return &formController{
		formService: formService,
		jwtGuard:    jwtGuard,
	}
}

func (c *formController) RegisterRoutes(r fiber.Router) {
	// Respondents fetch the schema to render the form shell.
	pub := r.Group("/form/v1")
	pub.Get(":id", c.Show)

	adm := r.Group("/admin/v1/forms")
	adm.Use(c.jwtGuard)
	adm.Get("", c.GetAll)
	adm.Post("", c.Create)
	adm.Put(":id", c.Update)
	adm.Delete(":id", c.Delete)
}

func (c *formController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form id")
	}

	res, err := c.formService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show form", res))
}

func (c *formController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.formService.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list forms", res))
}

func (c *formController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateFormRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.formService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create form", res))
}

func (c *formController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form id")
	}

	var req dto.UpdateFormRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.formService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update form", res))
}

func (c *formController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form id")
	}

	if err := c.formService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete form", nil))
}
