package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/moom-ugrd-24f/poke-n-pump-server/config"
	"github.com/moom-ugrd-24f/poke-n-pump-server/models"

	"gorm.io/gorm"
)

type PokeCandidate struct {
	ID                   uint   `json:"id"`
	Nickname             string `json:"nickname"`
	ProfilePicture       string `json:"profilePicture"`
	ExpoPushToken        string `json:"expoPushToken"`
	IsShamePostCandidate bool   `json:"isShamePostCandidate"`
	IsFriend             bool   `json:"isFriend"`
}

// GetPokeList computes who the requester can poke right now: friends plus
// globally visible users who are scheduled to work out today, have not
// attended yet, and were not already poked by the requester today. Friends
// come first, id-ascending within each group. limit <= 0 means no cap.
func GetPokeList(userID uint, now time.Time, limit int) ([]PokeCandidate, error) {
	var requester models.User
	if err := config.DB.Preload("Friends").First(&requester, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	friendSet := make(map[uint]bool, len(requester.Friends))
	for _, f := range requester.Friends {
		if f.ID != requester.ID {
			friendSet[f.ID] = true
		}
	}

	var globals []models.User
	if err := config.DB.Where("visibility = ?", models.VisibilityGlobal).Find(&globals).Error; err != nil {
		return nil, err
	}

	// Union of friends and globally visible users, deduplicated by id, the
	// requester (and its self sentinel) excluded.
	seen := map[uint]bool{requester.ID: true}
	pool := make([]*models.User, 0, len(requester.Friends)+len(globals))
	for _, f := range requester.Friends {
		if !seen[f.ID] {
			seen[f.ID] = true
			pool = append(pool, f)
		}
	}
	for i := range globals {
		g := &globals[i]
		if !seen[g.ID] {
			seen[g.ID] = true
			pool = append(pool, g)
		}
	}

	pokedToday, err := pokedReceiversToday(userID, now)
	if err != nil {
		return nil, err
	}

	today := int(now.Weekday())
	candidates := make([]PokeCandidate, 0, len(pool))
	for _, u := range pool {
		if !u.ScheduledOn(today) || u.TodayAttendance || pokedToday[u.ID] {
			continue
		}
		candidates = append(candidates, PokeCandidate{
			ID:                   u.ID,
			Nickname:             u.Nickname,
			ProfilePicture:       u.ProfilePicture,
			ExpoPushToken:        u.ExpoPushToken,
			IsShamePostCandidate: u.IsShamePostCandidate(),
			IsFriend:             friendSet[u.ID],
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].IsFriend != candidates[j].IsFriend {
			return candidates[i].IsFriend
		}
		return candidates[i].ID < candidates[j].ID
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// pokedReceiversToday collects who the requester already poked within the
// local calendar day containing now.
func pokedReceiversToday(senderID uint, now time.Time) (map[uint]bool, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	var receiverIDs []uint
	err := config.DB.Model(&models.Poke{}).
		Where("sender_id = ? AND timestamp >= ? AND timestamp < ?", senderID, start, end).
		Pluck("receiver_id", &receiverIDs).Error
	if err != nil {
		return nil, err
	}

	poked := make(map[uint]bool, len(receiverIDs))
	for _, id := range receiverIDs {
		poked[id] = true
	}
	return poked, nil
}
