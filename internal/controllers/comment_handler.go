package controllers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/dto"
	"socialfeed/internal/middleware"
	"socialfeed/internal/services"
)

type CommentHandler struct {
	Svc *services.PostService
}

// GET /posts/:postId/comments

// @Summary      List comments of a post
// @Description  Newest first
// @Tags         comments
// @Produce      json
// @Param        postId  path     string  true  "Post ID (hex ObjectID)"
// @Success      200     {array}  models.Comment
// @Failure      400     {object} dto.ErrorResponse
// @Failure      404     {object} dto.ErrorResponse
// @Failure      500     {object} dto.ErrorResponse
// @Router       /posts/{postId}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return err
	}
	comments, err := h.Svc.GetAllComments(c.UserContext(), postID)
	if err != nil {
		return err
	}
	return c.JSON(comments)
}

// POST /posts/:postId/comments

// @Summary      Create a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path     string                true  "Post ID (hex ObjectID)"
// @Param        body    body     dto.CreateCommentReq  true  "Comment payload"
// @Success      200     {object} dto.MessageResp
// @Failure      400     {object} dto.ErrorResponse
// @Failure      401     {object} dto.ErrorResponse
// @Failure      404     {object} dto.ErrorResponse
// @Failure      500     {object} dto.ErrorResponse
// @Router       /posts/{postId}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	caller, err := middleware.IdentityFromLocals(c)
	if err != nil {
		return err
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return err
	}

	var body dto.CreateCommentReq
	if err := parseBody(c, &body); err != nil {
		return err
	}

	if _, err := h.Svc.CommentOnPost(c.UserContext(), postID, caller, body.Text); err != nil {
		return err
	}
	return c.JSON(dto.MessageResp{Message: "Comment added successfully"})
}

// DELETE /posts/:postId/comments/:commentId

// @Summary      Delete a comment
// @Description  Allowed for the post author and the comment author
// @Tags         comments
// @Security     BearerAuth
// @Param        postId     path  string  true  "Post ID (hex ObjectID)"
// @Param        commentId  path  string  true  "Comment ID (hex ObjectID)"
// @Success      204
// @Failure      401        {object} dto.ErrorResponse
// @Failure      404        {object} dto.ErrorResponse
// @Router       /posts/{postId}/comments/{commentId} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return err
	}
	commentID, err := objectIDParam(c, "commentId")
	if err != nil {
		return err
	}
	if err := h.Svc.RemoveComment(c.UserContext(), postID, commentID, uid); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
