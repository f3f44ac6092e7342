package models

import "time"

const (
	PokeTypeJustPoke  = "Just Poke"
	PokeTypeJoinMe    = "Join Me"
	PokeTypeTrashTalk = "Trash Talk"
)

// Poke is an append-only nudge record. It is never updated; the candidate
// selector only reads it to exclude people already poked today.
type Poke struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"index;not null" json:"senderId"`
	ReceiverID uint      `gorm:"index;not null" json:"receiverId"`
	PokeType   string    `gorm:"size:32;not null" json:"pokeType"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}
