package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// MessageHandler handles customer/staff conversations.
type MessageHandler struct {
	messages ports.MessageService
}

func NewMessageHandler(messages ports.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type startConversationRequest struct {
	RecipientID     string `json:"recipient_id" validate:"required"`
	AppointmentCode string `json:"appointment_code"`
	Body            string `json:"body" validate:"required"`
}

type postMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

type conversationViewResponse struct {
	Conversation *domain.Conversation `json:"conversation"`
	Unread       int64                `json:"unread"`
}

type conversationDetailResponse struct {
	Conversation *domain.Conversation `json:"conversation"`
	Messages     []*domain.Message    `json:"messages"`
}

// Start handles POST /v1/conversations.
//
// @Summary      Start a conversation
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      startConversationRequest  true  "Recipient and first message"
// @Success      201   {object}  domain.Conversation
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/conversations [post]
func (h *MessageHandler) Start(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	conversation, err := h.messages.Start(c.Request().Context(), ports.StartConversationInput{
		InitiatorID:     scope.UserID,
		RecipientID:     req.RecipientID,
		AppointmentCode: req.AppointmentCode,
		Body:            req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, conversation)
}

// List handles GET /v1/conversations — the caller's threads with unread
// counts.
//
// @Summary      List my conversations
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  conversationViewResponse
// @Router       /v1/conversations [get]
func (h *MessageHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	views, err := h.messages.ListMine(c.Request().Context(), scope)
	if err != nil {
		return err
	}

	out := make([]conversationViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, conversationViewResponse{Conversation: v.Conversation, Unread: v.Unread})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/conversations/:id.
//
// @Summary      Get a conversation with its messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  conversationDetailResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/conversations/{id} [get]
func (h *MessageHandler) Get(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	conversation, messages, err := h.messages.Get(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conversationDetailResponse{
		Conversation: conversation,
		Messages:     messages,
	})
}

// Post handles POST /v1/conversations/:id/messages.
//
// @Summary      Post a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Conversation ID"
// @Param        body  body      postMessageRequest  true  "Message body"
// @Success      201   {object}  domain.Message
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/conversations/{id}/messages [post]
func (h *MessageHandler) Post(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	message, err := h.messages.Post(c.Request().Context(), scope, c.Param("id"), req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, message)
}

// MarkRead handles POST /v1/conversations/:id/read.
//
// @Summary      Mark a conversation read
// @Tags         messages
// @Security     BearerAuth
// @Param        id  path  string  true  "Conversation ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/conversations/{id}/read [post]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}
	if err := h.messages.MarkRead(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
