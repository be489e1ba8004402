package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/dto"
	"socialfeed/internal/apperr"
	"socialfeed/internal/middleware"
	"socialfeed/internal/services"
)

type CVHandler struct {
	Svc *services.CVService
}

// POST /cv

// @Summary      Create the caller's CV
// @Tags         cv
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body     dto.CVPayload  true  "CV sections"
// @Success      201   {object} dto.CreateCVResp
// @Failure      400   {object} dto.ErrorResponse
// @Failure      401   {object} dto.ErrorResponse
// @Failure      409   {object} dto.ErrorResponse
// @Failure      500   {object} dto.ErrorResponse
// @Router       /cv [post]
func (h *CVHandler) Create(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}

	var body dto.CVPayload
	if err := parseBody(c, &body); err != nil {
		return err
	}

	cv, err := h.Svc.Create(c.UserContext(), uid, body.Sections())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateCVResp{
		Message: "CV created successfully",
		CVID:    cv.ID.Hex(),
	})
}

// PUT /cv

// @Summary      Update a CV
// @Description  Each section present in the body replaces the stored one; absent sections are kept; an empty array clears a section.
// @Tags         cv
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body     dto.UpdateCVReq  true  "cvId and the sections to replace"
// @Success      200   {object} dto.MessageResp
// @Failure      400   {object} dto.ErrorResponse
// @Failure      401   {object} dto.ErrorResponse
// @Failure      404   {object} dto.ErrorResponse
// @Failure      500   {object} dto.ErrorResponse
// @Router       /cv [put]
func (h *CVHandler) Update(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}

	var body dto.UpdateCVReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	cvID, err := bson.ObjectIDFromHex(body.CVID)
	if err != nil {
		return apperr.Validation("invalid cvId")
	}

	if _, err := h.Svc.AddOrUpdateCV(c.UserContext(), uid, cvID, body.Sections()); err != nil {
		return err
	}
	return c.JSON(dto.MessageResp{Message: "CV updated successfully"})
}

// GET /cv?userId=

// @Summary      Get a user's CV
// @Tags         cv
// @Produce      json
// @Param        userId  query    string  true  "Owner user id"
// @Success      200     {object} models.CV
// @Failure      400     {object} dto.ErrorResponse
// @Failure      404     {object} dto.ErrorResponse
// @Failure      500     {object} dto.ErrorResponse
// @Router       /cv [get]
func (h *CVHandler) Get(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperr.Validation("userId is required")
	}
	cv, err := h.Svc.GetByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(cv)
}
