//go:build integration

package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"socialfeed/bootstrap"
	"socialfeed/database"
	"socialfeed/internal/cursor"
	"socialfeed/internal/models"
)

var testDB *mongo.Database

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Waiting for connections"),
				wait.ForListeningPort("27017/tcp"),
			),
		},
		Started: true,
	})
	if err != nil {
		fmt.Printf("failed to start mongo container: %v\n", err)
		os.Exit(1)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "27017")
	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	store := database.NewStore(uri, "socialfeed_test", 30*time.Second, zerolog.New(io.Discard))
	testDB, err = store.DB(ctx)
	if err == nil {
		err = bootstrap.EnsureIndexes(ctx, testDB)
	}
	if err != nil {
		fmt.Printf("failed to prepare database: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	_ = store.Close(ctx)
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func at(sec int) time.Time {
	return time.Date(2024, 5, 1, 0, 0, sec, 0, time.UTC)
}

func TestPostRepository_Likes(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(testDB)

	p := &models.Post{Text: "hello", Likes: []string{}, Comments: []bson.ObjectID{}, CreatedAt: at(1), UpdatedAt: at(1)}
	require.NoError(t, repo.Insert(ctx, p))

	added, err := repo.AddLike(ctx, p.ID, "u2")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddLike(ctx, p.ID, "u2")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = repo.AddLike(ctx, bson.NewObjectID(), "u2")
	require.NoError(t, err)
	assert.False(t, added)

	found, err := repo.RemoveLike(ctx, p.ID, "nobody")
	require.NoError(t, err)
	assert.True(t, found)

	stored, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, stored.Likes)

	deleted, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepository_ListPage(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(testDB)
	_, err := repo.Col.DeleteMany(ctx, bson.M{})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, &models.Post{Text: "p", Likes: []string{}, Comments: []bson.ObjectID{}, CreatedAt: at(i % 3)}))
	}

	all, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)

	first, err := repo.ListPage(ctx, nil, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	last := first[2]
	rest, err := repo.ListPage(ctx, &cursor.Position{CreatedAt: last.CreatedAt, ID: last.ID}, 3)
	require.NoError(t, err)
	require.Len(t, rest, 2)

	assert.Equal(t, all, append(first, rest...))
}

func TestCommentRepository_FindByIDsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(testDB)

	var ids []bson.ObjectID
	for i := 0; i < 3; i++ {
		c := &models.Comment{Text: fmt.Sprint(i), CreatedAt: at(10 + i)}
		require.NoError(t, repo.Insert(ctx, c))
		ids = append(ids, c.ID)
	}

	got, err := repo.FindByIDs(ctx, append(ids, bson.NewObjectID()))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].Text)
	assert.Equal(t, "0", got[2].Text)

	n, err := repo.DeleteMany(ctx, ids)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestMessageRepository_Conversation(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(testDB)

	require.NoError(t, repo.Insert(ctx, &models.Message{SenderID: "mA", ReceiverID: "mB", Text: "hi", CreatedAt: at(1)}))
	require.NoError(t, repo.Insert(ctx, &models.Message{SenderID: "mB", ReceiverID: "mA", Text: "yo", CreatedAt: at(2)}))
	require.NoError(t, repo.Insert(ctx, &models.Message{SenderID: "mA", ReceiverID: "mC", Text: "other", CreatedAt: at(3)}))

	ab, err := repo.Conversation(ctx, "mA", "mB")
	require.NoError(t, err)
	ba, err := repo.Conversation(ctx, "mB", "mA")
	require.NoError(t, err)
	require.Len(t, ab, 2)
	assert.Equal(t, "hi", ab[0].Text)
	assert.Equal(t, ab, ba)

	latest, err := repo.Latest(ctx, "mB", "mA")
	require.NoError(t, err)
	assert.Equal(t, "yo", latest.Text)

	_, err = repo.Latest(ctx, "mB", "mC")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactRepository_EnsureEdge(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(testDB)
	edge := &models.Contact{UserID: "cB", ContactID: "cA", FirstName: "Alice"}

	created, err := repo.EnsureEdge(ctx, edge, at(1))
	require.NoError(t, err)
	assert.True(t, created)

	edge.FirstName = "Renamed"
	created, err = repo.EnsureEdge(ctx, edge, at(5))
	require.NoError(t, err)
	assert.False(t, created)

	_, err = repo.EnsureEdge(ctx, &models.Contact{UserID: "cB", ContactID: "cZ"}, at(3))
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, "cB")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "cA", list[0].ContactID)
	assert.Equal(t, "Alice", list[0].FirstName)
	assert.True(t, at(1).Equal(list[0].CreatedAt))
	assert.True(t, at(5).Equal(list[0].UpdatedAt))

	require.NoError(t, repo.Touch(ctx, "cB", "cZ", at(7)))
	require.NoError(t, repo.Touch(ctx, "cB", "nobody", at(8)))

	list, err = repo.ListByUser(ctx, "cB")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "cZ", list[0].ContactID)
	assert.True(t, at(7).Equal(list[0].UpdatedAt))
}

func TestCVRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCVRepository(testDB)

	cv := &models.CV{UserID: "cv-user", SchemaVersion: models.CVSchemaVersion}
	cv.Normalize()
	require.NoError(t, repo.Insert(ctx, cv))

	err := repo.Insert(ctx, &models.CV{UserID: "cv-user"})
	assert.ErrorIs(t, err, ErrDuplicate)

	sections := cv.CVSections
	sections.Skills = []models.Skill{{Name: "Go", Proficiency: models.Advanced}}
	require.NoError(t, repo.SaveSections(ctx, cv.ID, sections, at(9)))

	got, err := repo.FindByUser(ctx, "cv-user")
	require.NoError(t, err)
	assert.Equal(t, sections.Skills, got.Skills)
	assert.Empty(t, got.Education)
	assert.True(t, at(9).Equal(got.UpdatedAt))

	assert.ErrorIs(t, repo.SaveSections(ctx, bson.NewObjectID(), sections, at(9)), ErrNotFound)
}
