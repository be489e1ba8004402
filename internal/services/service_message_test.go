package services

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/apperr"
	"socialfeed/internal/models"
	"socialfeed/internal/repository/memstore"
)

type messageFixture struct {
	svc      *MessageService
	messages *memstore.Messages
	contacts *memstore.Contacts
}

func newMessageFixture() messageFixture {
	f := messageFixture{messages: memstore.NewMessages(), contacts: memstore.NewContacts()}
	f.svc = NewMessageService(f.messages, f.contacts, nopLog)
	f.svc.now = stepClock()
	return f
}

func texts(msgs []models.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

func TestConversationScenario(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	_, err := f.svc.SendMessage(ctx, ident("A", "Alice"), "B", "hi")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, ident("B", "Bob"), "A", "yo")
	require.NoError(t, err)

	ab, err := f.svc.GetMessages(ctx, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi", "yo"}, texts(ab))

	ba, err := f.svc.GetMessages(ctx, "B", "A")
	require.NoError(t, err)
	assert.Equal(t, ab, ba)

	contacts, err := f.contacts.ListByUser(ctx, "B")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "A", contacts[0].ContactID)
	assert.Equal(t, "Alice", contacts[0].FirstName)
}

func TestSendMessage_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	_, err := f.svc.SendMessage(ctx, ident("A", "Alice"), "B", "  ")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = f.svc.SendMessage(ctx, ident("A", "Alice"), "", "hi")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = f.svc.SendMessage(ctx, ident("A", "Alice"), "A", "hi")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = f.svc.SendMessage(ctx, nil, "B", "hi")
	assert.True(t, errors.Is(err, apperr.ErrAuth))

	msgs, err := f.svc.GetMessages(ctx, "A", "B")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSendMessage_CreatesContactOnce(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	for _, text := range []string{"one", "two", "three"} {
		_, err := f.svc.SendMessage(ctx, ident("A", "Alice"), "B", text)
		require.NoError(t, err)
	}
	contacts, err := f.contacts.ListByUser(ctx, "B")
	require.NoError(t, err)
	assert.Len(t, contacts, 1)

	none, err := f.contacts.ListByUser(ctx, "A")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSendMessage_ContactFailureIsNotSurfaced(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()
	f.contacts.FailEnsure = errors.New("socket closed")

	msg, err := f.svc.SendMessage(ctx, ident("A", "Alice"), "B", "hi")
	require.NoError(t, err)
	assert.False(t, msg.ID.IsZero())
}

func TestListContacts_PreviewAndOrder(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	_, err := f.svc.SendMessage(ctx, ident("A", "Alice"), "me", "from alice")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, ident("C", "Carol"), "me", "from carol")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, ident("me", "Me"), "A", "reply to alice")
	require.NoError(t, err)

	views, err := f.svc.ListContacts(ctx, "me")
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "A", views[0].ContactID)
	assert.Equal(t, "reply to alice", views[0].LastMessage)
	assert.NotNil(t, views[0].LastMessageAt)

	assert.Equal(t, "C", views[1].ContactID)
	assert.Equal(t, "from carol", views[1].LastMessage)
}

func TestSendMessage_ReplyBumpsSenderEdge(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	_, err := f.svc.SendMessage(ctx, ident("B", "Bob"), "A", "from b")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, ident("C", "Carol"), "A", "from c")
	require.NoError(t, err)
	reply, err := f.svc.SendMessage(ctx, ident("A", "Alice"), "B", "a replies b")
	require.NoError(t, err)

	edges, err := f.contacts.ListByUser(ctx, "A")
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.Equal(t, "B", edges[0].ContactID)
	assert.True(t, reply.CreatedAt.Equal(edges[0].UpdatedAt))
}

func TestListContacts_OrdersByLatestMessage(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()

	// Edges as left by an older writer that never bumped the sender side.
	_, err := f.contacts.EnsureEdge(ctx, &models.Contact{UserID: "A", ContactID: "B"}, f.svc.now())
	require.NoError(t, err)
	_, err = f.contacts.EnsureEdge(ctx, &models.Contact{UserID: "A", ContactID: "C"}, f.svc.now())
	require.NoError(t, err)
	require.NoError(t, f.messages.Insert(ctx, &models.Message{SenderID: "A", ReceiverID: "B", Text: "latest", CreatedAt: f.svc.now()}))

	views, err := f.svc.ListContacts(ctx, "A")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "B", views[0].ContactID)
	assert.Equal(t, "latest", views[0].LastMessage)
	assert.Equal(t, "C", views[1].ContactID)
	assert.Equal(t, NoMessagesYet, views[1].LastMessage)
}

func TestListContacts_NoMessagesYet(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture()
	_, err := f.contacts.EnsureEdge(ctx, &models.Contact{UserID: "me", ContactID: "ghost"}, f.svc.now())
	require.NoError(t, err)

	views, err := f.svc.ListContacts(ctx, "me")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, NoMessagesYet, views[0].LastMessage)
	assert.Nil(t, views[0].LastMessageAt)

	empty, err := f.svc.ListContacts(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
