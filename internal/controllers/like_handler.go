package controllers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/dto"
	"socialfeed/internal/middleware"
	"socialfeed/internal/services"
)

type LikeHandler struct {
	Svc *services.PostService
}

// @Summary      Like a post
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path     string  true  "Post ID (hex ObjectID)"
// @Success      200     {object} dto.MessageResp
// @Failure      401     {object} dto.ErrorResponse
// @Failure      404     {object} dto.ErrorResponse
// @Failure      409     {object} dto.ErrorResponse
// @Router       /posts/{postId}/likes [post]
func (h *LikeHandler) Like(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return err
	}
	if err := h.Svc.LikePost(c.UserContext(), postID, uid); err != nil {
		return err
	}
	return c.JSON(dto.MessageResp{Message: "Post liked successfully"})
}

// @Summary      Unlike a post
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path     string  true  "Post ID (hex ObjectID)"
// @Success      200     {object} dto.MessageResp
// @Failure      401     {object} dto.ErrorResponse
// @Failure      404     {object} dto.ErrorResponse
// @Router       /posts/{postId}/likes [delete]
func (h *LikeHandler) Unlike(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return err
	}
	if err := h.Svc.UnlikePost(c.UserContext(), postID, uid); err != nil {
		return err
	}
	return c.JSON(dto.MessageResp{Message: "Post unliked successfully"})
}
