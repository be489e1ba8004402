package controllers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/dto"
	"socialfeed/internal/middleware"
	"socialfeed/internal/services"
)

type PostHandler struct {
	Svc *services.PostService
}

// GET /posts

// @Summary      List posts
// @Description  All posts newest first with comments resolved. Passing limit or cursor returns a page instead.
// @Tags         posts
// @Produce      json
// @Param        limit   query  int     false  "Max items per page" minimum(1) maximum(100) default(20)
// @Param        cursor  query  string  false  "Opaque next-page cursor"
// @Success      200     {array}  models.PostView
// @Failure      400     {object} dto.ErrorResponse
// @Failure      500     {object} dto.ErrorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	curStr := c.Query("cursor")
	limit := c.QueryInt("limit", 0)

	if curStr == "" && limit == 0 {
		posts, err := h.Svc.GetAllPosts(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(posts)
	}

	page, err := h.Svc.ListPostsPage(c.UserContext(), curStr, int64(limit))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// GET /posts/:postId

// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        postId  path     string  true  "Post ID (hex ObjectID)"
// @Success      200     {object} models.PostView
// @Failure      400     {object} dto.ErrorResponse
// @Failure      404     {object} dto.ErrorResponse
// @Router       /posts/{postId} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return err
	}
	post, err := h.Svc.GetPost(c.UserContext(), postID)
	if err != nil {
		return err
	}
	return c.JSON(post)
}

// POST /posts

// @Summary      Create a post
// @Description  Accepts JSON or a form with postInput and imageUrl
// @Tags         posts
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        body  body     dto.CreatePostReq  true  "Post payload"
// @Success      201   {object} models.Post
// @Failure      400   {object} dto.ErrorResponse
// @Failure      401   {object} dto.ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	caller, err := middleware.IdentityFromLocals(c)
	if err != nil {
		return err
	}

	var body dto.CreatePostReq
	if err := parseBody(c, &body); err != nil {
		return err
	}

	post, err := h.Svc.Create(c.UserContext(), caller, services.CreatePostInput{
		Text:     body.Body(),
		ImageURL: body.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DELETE /posts/:postId

// @Summary      Delete a post
// @Description  Only the author may delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        postId  path  string  true  "Post ID (hex ObjectID)"
// @Success      204
// @Failure      401     {object} dto.ErrorResponse
// @Failure      404     {object} dto.ErrorResponse
// @Router       /posts/{postId} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return err
	}
	if err := h.Svc.Remove(c.UserContext(), postID, uid); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
