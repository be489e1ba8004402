package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"socialfeed/internal/apperr"
	"socialfeed/internal/logger"
	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

// NoMessagesYet is the preview shown for a contact with no message history.
const NoMessagesYet = "No messages yet"

type MessageService struct {
	messages MessageStore
	contacts ContactStore
	log      zerolog.Logger
	now      Clock
}

func NewMessageService(messages MessageStore, contacts ContactStore, log zerolog.Logger) *MessageService {
	return &MessageService{
		messages: messages,
		contacts: contacts,
		log:      log,
		now:      systemClock,
	}
}

// SendMessage stores a message from sender to receiverID. The first message
// from a sender also records the sender as a contact of the receiver.
func (s *MessageService) SendMessage(ctx context.Context, sender *models.Identity, receiverID, text string) (*models.Message, error) {
	if sender == nil || sender.ID == "" {
		return nil, errUnauthenticated
	}
	receiverID = strings.TrimSpace(receiverID)
	if receiverID == "" {
		return nil, apperr.Validation("receiverId is required")
	}
	if receiverID == sender.ID {
		return nil, apperr.Validation("cannot send a message to yourself")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("text is required")
	}

	now := s.now()
	msg := &models.Message{
		SenderID:   sender.ID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, apperr.Persistence("Failed to send message", err)
	}

	metrics.Event(metrics.MessageSent)

	log := logger.FromContext(ctx, s.log)
	created, err := s.contacts.EnsureEdge(ctx, &models.Contact{
		UserID:    receiverID,
		ContactID: sender.ID,
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
		ImageURL:  sender.ImageURL,
	}, now)
	if err != nil {
		// The message is stored; a missing edge only hides it from the inbox list.
		log.Error().Err(err).Str("receiver_id", receiverID).Msg("failed to record contact")
	} else if created {
		metrics.Event(metrics.ContactCreated)
		log.Debug().Str("receiver_id", receiverID).Str("contact_id", sender.ID).Msg("contact created")
	}
	if err := s.contacts.Touch(ctx, sender.ID, receiverID, now); err != nil {
		log.Error().Err(err).Str("sender_id", sender.ID).Msg("failed to bump contact")
	}
	return msg, nil
}

// GetMessages returns the conversation between a and b, oldest first. The
// argument order does not matter.
func (s *MessageService) GetMessages(ctx context.Context, a, b string) ([]models.Message, error) {
	if a == "" || b == "" {
		return nil, apperr.Validation("senderId and receiverId are required")
	}
	msgs, err := s.messages.Conversation(ctx, a, b)
	if err != nil {
		return nil, apperr.Persistence("Failed to fetch messages", err)
	}
	return msgs, nil
}

// ListContacts returns userID's contacts, each with the latest message of the
// conversation as a preview.
func (s *MessageService) ListContacts(ctx context.Context, userID string) ([]models.ContactView, error) {
	if userID == "" {
		return nil, errUnauthenticated
	}
	contacts, err := s.contacts.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("Failed to fetch contacts", err)
	}

	views := make([]models.ContactView, 0, len(contacts))
	for _, c := range contacts {
		view := models.ContactView{Contact: c, LastMessage: NoMessagesYet}

		last, err := s.messages.Latest(ctx, userID, c.ContactID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return nil, apperr.Persistence("Failed to fetch last message", err)
		default:
			at := last.CreatedAt
			view.LastMessage = last.Text
			view.LastMessageAt = &at
		}
		views = append(views, view)
	}
	// Most recent activity first, whichever side sent last.
	sort.SliceStable(views, func(i, j int) bool {
		return lastActivity(views[i]).After(lastActivity(views[j]))
	})
	return views, nil
}

func lastActivity(v models.ContactView) time.Time {
	if v.LastMessageAt != nil && v.LastMessageAt.After(v.UpdatedAt) {
		return *v.LastMessageAt
	}
	return v.UpdatedAt
}
