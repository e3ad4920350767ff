package controller

import (
	"nestle-in-be/internal/apperror"
	"nestle-in-be/internal/dto"
	"nestle-in-be/internal/pkg/serverutils"
	"nestle-in-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPodController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Book(ctx *fiber.Ctx) error
}

type podController struct {
	podService service.IPodService
}

func NewPodController(podService service.IPodService) IPodController {
	return &podController{
		podService: podService,
	}
}

func (c *podController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/pods")
	h.Get("", c.List)
	h.Post(":id/book", c.Book)
}

func (c *podController) List(ctx *fiber.Ctx) error {
	res, err := c.podService.ListPods(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Available pods", res))
}

func (c *podController) Book(ctx *fiber.Ctx) error {
	podId, err := ctx.ParamsInt("id")
	if err != nil {
		return apperror.NewValidation("Invalid pod id")
	}

	var req dto.BookPodRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("timeSlot is required")
	}
	req.PodId = podId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.podService.BookPod(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Pod booked", res))
}
