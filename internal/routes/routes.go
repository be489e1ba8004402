package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"

	"socialfeed/dto"
	"socialfeed/internal/controllers"
	"socialfeed/internal/metrics"
	"socialfeed/internal/middleware"
	"socialfeed/internal/services"
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Posts    *services.PostService
	Messages *services.MessageService
	CVs      *services.CVService
	Store    Pinger

	JWTSecret      string
	JWTIssuer      string
	RequestTimeout time.Duration
	CORSOrigins    string
	Log            zerolog.Logger
}

// NewApp builds the fiber app with the error handler, the shared middleware
// and every route registered.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "socialfeed",
		ErrorHandler: middleware.ErrorHandler(deps.Log),
	})

	app.Use(recover.New())
	origins := deps.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderRequestID,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	Setup(app, deps)
	return app
}

// Setup registers the request-scoped middleware and all resource routes.
func Setup(app *fiber.App, deps Deps) {
	app.Use(middleware.RequestID(deps.Log))
	app.Use(metrics.Middleware(middleware.StatusOf))
	app.Use(middleware.Deadline(deps.RequestTimeout))
	app.Use(middleware.JWTIdentity(deps.JWTSecret, deps.JWTIssuer))

	app.Get("/healthz", health(deps.Store))
	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/metrics", metrics.Handler())

	PostRoutes(app, deps.Posts)
	MessageRoutes(app, deps.Messages)
	CVRoutes(app, deps.CVs)
}

// @Summary      Health check
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "ok"
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /healthz [get]
func health(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store != nil {
			if err := store.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).
					JSON(dto.ErrorResponse{Error: "database unavailable"})
			}
		}
		return c.SendString("ok")
	}
}

func PostRoutes(app *fiber.App, svc *services.PostService) {
	posts := &controllers.PostHandler{Svc: svc}
	likes := &controllers.LikeHandler{Svc: svc}
	comments := &controllers.CommentHandler{Svc: svc}
	auth := middleware.RequireAuth()

	g := app.Group("/posts")
	g.Get("/", posts.List)
	g.Post("/", auth, posts.Create)
	g.Get("/:postId", posts.Get)
	g.Delete("/:postId", auth, posts.Delete)

	g.Post("/:postId/likes", auth, likes.Like)
	g.Delete("/:postId/likes", auth, likes.Unlike)

	g.Get("/:postId/comments", comments.List)
	g.Post("/:postId/comments", auth, comments.Create)
	g.Delete("/:postId/comments/:commentId", auth, comments.Delete)
}

func MessageRoutes(app *fiber.App, svc *services.MessageService) {
	h := &controllers.MessageHandler{Svc: svc}
	auth := middleware.RequireAuth()

	app.Post("/messages", auth, h.Send)
	app.Get("/messages", auth, h.Conversation)
	app.Get("/contacts", auth, h.Contacts)
}

func CVRoutes(app *fiber.App, svc *services.CVService) {
	h := &controllers.CVHandler{Svc: svc}
	auth := middleware.RequireAuth()

	app.Post("/cv", auth, h.Create)
	app.Put("/cv", auth, h.Update)
	app.Get("/cv", h.Get)
}
