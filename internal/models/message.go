package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Message is immutable once stored. A conversation is every message whose
// {sender, receiver} pair matches, in either direction.
type Message struct {
	ID         bson.ObjectID `json:"id"         bson:"_id,omitempty"`
	SenderID   string        `json:"senderId"   bson:"sender_id"`
	ReceiverID string        `json:"receiverId" bson:"receiver_id"`
	Text       string        `json:"text"       bson:"text"`
	CreatedAt  time.Time     `json:"createdAt"  bson:"created_at"`
	UpdatedAt  time.Time     `json:"updatedAt"  bson:"updated_at"`
}

// Contact is a directed edge: UserID has corresponded with ContactID.
type Contact struct {
	ID        bson.ObjectID `json:"id"        bson:"_id,omitempty"`
	UserID    string        `json:"userId"    bson:"user_id"`
	ContactID string        `json:"contactId" bson:"contact_id"`
	FirstName string        `json:"firstName" bson:"first_name"`
	LastName  string        `json:"lastName"  bson:"last_name"`
	ImageURL  string        `json:"imageUrl"  bson:"image_url"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}

// ContactView is a contact with a preview of the latest message exchanged.
type ContactView struct {
	Contact
	LastMessage   string     `json:"lastMessage"`
	LastMessageAt *time.Time `json:"lastMessageDate"`
}
