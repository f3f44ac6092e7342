package models

import (
	"gorm.io/gorm"
)

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// FriendRequest is the pending/accepted/rejected handshake between two users.
// At most one active (pending or accepted) request may exist per ordered
// (sender, receiver) pair.
type FriendRequest struct {
	gorm.Model
	SenderID   uint   `gorm:"index;not null" json:"senderId"`
	ReceiverID uint   `gorm:"index;not null" json:"receiverId"`
	Status     string `gorm:"size:16;default:pending" json:"status"`
}
