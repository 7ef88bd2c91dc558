package controller

import (
	"baristabox-be/internal/dto"
	"baristabox-be/internal/pkg/serverutils"
	"baristabox-be/internal/service"
	ws "baristabox-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
	hub            *ws.Hub // nil disables the socket endpoint
}

func NewChatbotController(chatbotService service.IChatbotService, hub *ws.Hub) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
		hub:            hub,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/session", c.CreateSession)
	h.Post("/send", c.SendChat)
	h.Get("/session/:id", c.GetChatHistory)
	h.Delete("/session/:id", c.DeleteSession)

	if c.hub != nil {
		h.Use("/ws", c.upgrade)
		h.Get("/ws", websocket.New(c.socket))
	}
}

func (c *chatbotController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if c.hub != nil {
		c.hub.Deliver(ctx.Context(), res.ChatSessionId, ws.ReplyFrame(res))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatbotController) GetChatHistory(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.GetChatHistory(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatbotController) DeleteSession(ctx *fiber.Ctx) error {
	if err := c.chatbotService.DeleteSession(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session deleted", nil))
}

// upgrade checks the session exists before the handshake so an unknown id
// gets a plain 404 instead of a socket that immediately errors.
func (c *chatbotController) upgrade(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}
	if _, err := c.chatbotService.GetChatHistory(ctx.Context(), sessionID); err != nil {
		return err
	}
	ctx.Locals("session_id", sessionID)
	return ctx.Next()
}

func (c *chatbotController) socket(conn *websocket.Conn) {
	sessionID, _ := conn.Locals("session_id").(string)
	ws.ServeWs(c.hub, conn, sessionID, c.chatbotService.SendChat)
}
