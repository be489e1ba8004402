package controllers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/dto"
	"socialfeed/internal/apperr"
	"socialfeed/internal/middleware"
	"socialfeed/internal/services"
)

type MessageHandler struct {
	Svc *services.MessageService
}

// POST /messages

// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body     dto.SendMessageReq  true  "Message payload"
// @Success      201   {object} models.Message
// @Failure      400   {object} dto.ErrorResponse
// @Failure      401   {object} dto.ErrorResponse
// @Router       /messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	sender, err := middleware.IdentityFromLocals(c)
	if err != nil {
		return err
	}

	var body dto.SendMessageReq
	if err := parseBody(c, &body); err != nil {
		return err
	}

	msg, err := h.Svc.SendMessage(c.UserContext(), sender, body.ReceiverID, body.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GET /messages?senderId=&receiverId=

// @Summary      Conversation between two users
// @Description  Oldest first. The caller must be one of the two users.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        senderId    query    string  true  "First user"
// @Param        receiverId  query    string  true  "Second user"
// @Success      200         {array}  models.Message
// @Failure      400         {object} dto.ErrorResponse
// @Failure      401         {object} dto.ErrorResponse
// @Router       /messages [get]
func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}

	a, b := c.Query("senderId"), c.Query("receiverId")
	if a == "" || b == "" {
		return apperr.Validation("senderId and receiverId are required")
	}
	if uid != a && uid != b {
		return apperr.Auth("not a participant of this conversation")
	}

	msgs, err := h.Svc.GetMessages(c.UserContext(), a, b)
	if err != nil {
		return err
	}
	return c.JSON(msgs)
}

// GET /contacts

// @Summary      List contacts
// @Description  Users who have messaged the caller, most recent first, with a last message preview
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.ContactView
// @Failure      401  {object} dto.ErrorResponse
// @Router       /contacts [get]
func (h *MessageHandler) Contacts(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}
	contacts, err := h.Svc.ListContacts(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return c.JSON(contacts)
}
