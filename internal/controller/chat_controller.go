package controller

import (
	"nestle-in-be/internal/apperror"
	"nestle-in-be/internal/dto"
	"nestle-in-be/internal/pkg/serverutils"
	"nestle-in-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	NewSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	UpdateTitle(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

// Chat routes are deliberately unauthenticated: identity is a client-chosen
// userId carried in the body or query, with anonymous fallback.
func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("message", c.SendMessage)
	h.Get("history/:chatId", c.History)
	h.Get("sessions/:userId", c.ListSessions)
	h.Post("session/new", c.NewSession)
	h.Delete("session/:chatId", c.DeleteSession)
	h.Put("session/:chatId/title", c.UpdateTitle)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("Message and chatId are required")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.NewValidation("Message and chatId are required")
	}

	res, err := c.chatService.SendMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	chatId := ctx.Params("chatId")
	userId := ctx.Query("userId")

	res, err := c.chatService.History(ctx.Context(), chatId, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	userId := ctx.Params("userId")
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.chatService.ListSessions(ctx.Context(), userId, page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat sessions", res))
}

func (c *chatController) NewSession(ctx *fiber.Ctx) error {
	var req dto.NewSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		// An empty body is a valid request for an anonymous session.
		req = dto.NewSessionRequest{}
	}

	res, err := c.chatService.NewSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat session created", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	chatId := ctx.Params("chatId")
	userId := ctx.Query("userId")

	if err := c.chatService.DeleteSession(ctx.Context(), chatId, userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Chat session deleted successfully", nil))
}

func (c *chatController) UpdateTitle(ctx *fiber.Ctx) error {
	var req dto.UpdateTitleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("Title is required")
	}
	req.ChatId = ctx.Params("chatId")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.UpdateTitle(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat title updated", res))
}
