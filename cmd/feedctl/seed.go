package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"socialfeed/config"
	"socialfeed/internal/apperr"
	"socialfeed/internal/logger"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/repository/memstore"
	"socialfeed/internal/services"
)

var seedUsers = []models.Identity{
	{ID: "seed_alice", FirstName: "Alice", LastName: "Andersen", ImageURL: "https://i.pravatar.cc/150?u=alice"},
	{ID: "seed_bob", FirstName: "Bob", LastName: "Berg", ImageURL: "https://i.pravatar.cc/150?u=bob"},
}

func seedCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample posts, comments, messages and a CV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag)
			defer cancel()

			printf := func(format string, a ...any) {
				fmt.Fprintf(cmd.OutOrStdout(), format+"\n", a...)
			}

			if dryRun {
				posts, messages, cvs := memoryServices(logger.New("feedctl", "warn", true))
				return seed(ctx, posts, messages, cvs, printf)
			}

			cfg, store, db, lg, err := connect(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			posts := services.NewPostService(repository.NewPostRepository(db), repository.NewCommentRepository(db), cfg.CommentDeletePolicy, lg)
			messages := services.NewMessageService(repository.NewMessageRepository(db), repository.NewContactRepository(db), lg)
			cvs := services.NewCVService(repository.NewCVRepository(db), lg)

			return seed(ctx, posts, messages, cvs, printf)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the seed against in-memory stores without touching MongoDB")
	return cmd
}

// memoryServices wires the services to fresh in-memory stores.
func memoryServices(lg zerolog.Logger) (*services.PostService, *services.MessageService, *services.CVService) {
	return services.NewPostService(memstore.NewPosts(), memstore.NewComments(), config.PolicyOrphan, lg),
		services.NewMessageService(memstore.NewMessages(), memstore.NewContacts(), lg),
		services.NewCVService(memstore.NewCVs(), lg)
}

func seed(ctx context.Context, posts *services.PostService, messages *services.MessageService, cvs *services.CVService, printf func(string, ...any)) error {
	alice, bob := &seedUsers[0], &seedUsers[1]

	post, err := posts.Create(ctx, alice, services.CreatePostInput{Text: "Hello from the seed script"})
	if err != nil {
		return err
	}
	printf("post %s", post.ID.Hex())

	if _, err := posts.CommentOnPost(ctx, post.ID, bob, "Welcome aboard"); err != nil {
		return err
	}
	if err := posts.LikePost(ctx, post.ID, bob.ID); err != nil {
		return err
	}

	if _, err := messages.SendMessage(ctx, alice, bob.ID, "hi"); err != nil {
		return err
	}
	if _, err := messages.SendMessage(ctx, bob, alice.ID, "yo"); err != nil {
		return err
	}

	cv, err := cvs.Create(ctx, alice.ID, models.CVSections{
		Education: []models.EducationEntry{{Institution: "Seed University", Degree: "BSc", FieldOfStudy: "Computer Science"}},
		Skills:    []models.Skill{{Name: "Go", Proficiency: models.Intermediate}},
	})
	switch {
	case err == nil:
		printf("cv %s", cv.ID.Hex())
	case isConflict(err):
		printf("cv for %s already exists", alice.ID)
	default:
		return err
	}
	return nil
}

func isConflict(err error) bool {
	return errors.Is(err, apperr.ErrConflict)
}
