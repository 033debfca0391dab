package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/service"
)

const maxChatMessage = 2000

// ChatResponder answers a chat message. It never fails; model errors yield a canned reply.
type ChatResponder interface {
	Respond(ctx context.Context, message string) model.ChatResponse
}

type ChatHandler struct {
	Service ChatResponder
}

func NewChatHandler(svc ChatResponder) *ChatHandler {
	return &ChatHandler{Service: svc}
}

func checkChatMessage(in model.ChatMessage) error {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return fmt.Errorf("%w: message is required", service.ErrValidation)
	}
	if len([]rune(msg)) > maxChatMessage {
		return fmt.Errorf("%w: message must be at most %d characters", service.ErrValidation, maxChatMessage)
	}
	return nil
}

// @Summary Talk to the journaling companion
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body model.ChatMessage true "Message"
// @Success 200 {object} model.ChatResponse
// @Router /chat/query [post]
func (h *ChatHandler) QueryFiber(c *fiber.Ctx) error {
	var in model.ChatMessage
	if err := c.BodyParser(&in); err != nil {
		return fiberError(c, newBadRequest("invalid request body"))
	}
	if err := checkChatMessage(in); err != nil {
		return fiberError(c, err)
	}
	return c.JSON(h.Service.Respond(c.UserContext(), in.Message))
}

func (h *ChatHandler) QueryGin(c *gin.Context) {
	var in model.ChatMessage
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorGin(c, newBadRequest("invalid request body"))
		return
	}
	if err := checkChatMessage(in); err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Service.Respond(c.Request.Context(), in.Message))
}
