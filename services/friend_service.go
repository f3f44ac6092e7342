package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/moom-ugrd-24f/poke-n-pump-server/config"
	"github.com/moom-ugrd-24f/poke-n-pump-server/models"

	"gorm.io/gorm"
)

// SendFriendRequest resolves the receiver by invite code and opens a pending
// request. The receiver's push token is handed back so the caller can do the
// notification delivery itself. At most one active (pending or accepted)
// request may exist per ordered sender/receiver pair.
func SendFriendRequest(senderID uint, receiverInviteCode string) (*models.FriendRequest, string, error) {
	if _, err := GetUser(senderID); err != nil {
		return nil, "", err
	}

	var receiver models.User
	err := config.DB.Where("invite_code = ?", receiverInviteCode).First(&receiver).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("%w: no user with invite code %q", ErrNotFound, receiverInviteCode)
	}
	if err != nil {
		return nil, "", err
	}

	var count int64
	err = config.DB.Model(&models.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ? AND status IN ?",
			senderID, receiver.ID, []string{models.RequestPending, models.RequestAccepted}).
		Count(&count).Error
	if err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", fmt.Errorf("%w: request already exists", ErrConflict)
	}

	request := models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     models.RequestPending,
	}
	if err := config.DB.Create(&request).Error; err != nil {
		return nil, "", err
	}
	return &request, receiver.ExpoPushToken, nil
}

// AcceptFriendRequest flips a pending request to accepted and adds each user
// to the other's friend set. The join table keys on (user, friend), so the
// union stays deduplicated even when a pair re-friends.
func AcceptFriendRequest(requestID uint) (*models.FriendRequest, error) {
	request, err := getPendingRequest(requestID)
	if err != nil {
		return nil, err
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var sender, receiver models.User
		if err := tx.First(&sender, request.SenderID).Error; err != nil {
			return err
		}
		if err := tx.First(&receiver, request.ReceiverID).Error; err != nil {
			return err
		}

		request.Status = models.RequestAccepted
		if err := tx.Save(request).Error; err != nil {
			return err
		}
		if err := tx.Model(&sender).Association("Friends").Append(&receiver); err != nil {
			return err
		}
		return tx.Model(&receiver).Association("Friends").Append(&sender)
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// RejectFriendRequest flips a pending request to rejected. Friend sets are
// untouched.
func RejectFriendRequest(requestID uint) (*models.FriendRequest, error) {
	request, err := getPendingRequest(requestID)
	if err != nil {
		return nil, err
	}
	request.Status = models.RequestRejected
	if err := config.DB.Save(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func getPendingRequest(requestID uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := config.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: friend request %d", ErrNotFound, requestID)
		}
		return nil, err
	}
	if request.Status != models.RequestPending {
		return nil, fmt.Errorf("%w: friend request already %s", ErrInvalidState, request.Status)
	}
	return &request, nil
}

type ReceivedRequest struct {
	ID             uint      `json:"id"`
	SenderID       uint      `json:"senderId"`
	SenderNickname string    `json:"senderNickname"`
	ReceiverID     uint      `json:"receiverId"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ReceivedRequests lists every request sent to the user, with sender
// nicknames resolved in one extra query.
func ReceivedRequests(userID uint) ([]ReceivedRequest, error) {
	if _, err := GetUser(userID); err != nil {
		return nil, err
	}

	var requests []models.FriendRequest
	if err := config.DB.Where("receiver_id = ?", userID).Order("id ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return []ReceivedRequest{}, nil
	}

	senderIDs := make([]uint, 0, len(requests))
	for _, r := range requests {
		senderIDs = append(senderIDs, r.SenderID)
	}
	var senders []models.User
	if err := config.DB.Where("id IN ?", senderIDs).Find(&senders).Error; err != nil {
		return nil, err
	}
	nicknames := make(map[uint]string, len(senders))
	for _, s := range senders {
		nicknames[s.ID] = s.Nickname
	}

	out := make([]ReceivedRequest, 0, len(requests))
	for _, r := range requests {
		out = append(out, ReceivedRequest{
			ID:             r.ID,
			SenderID:       r.SenderID,
			SenderNickname: nicknames[r.SenderID],
			ReceiverID:     r.ReceiverID,
			Status:         r.Status,
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
		})
	}
	return out, nil
}

type GroupedRequests struct {
	Pending  []ReceivedRequest `json:"pending"`
	Accepted []ReceivedRequest `json:"accepted"`
	Rejected []ReceivedRequest `json:"rejected"`
}

// ReceivedRequestsGrouped partitions the received requests by status.
func ReceivedRequestsGrouped(userID uint) (*GroupedRequests, error) {
	requests, err := ReceivedRequests(userID)
	if err != nil {
		return nil, err
	}
	grouped := GroupedRequests{
		Pending:  []ReceivedRequest{},
		Accepted: []ReceivedRequest{},
		Rejected: []ReceivedRequest{},
	}
	for _, r := range requests {
		switch r.Status {
		case models.RequestPending:
			grouped.Pending = append(grouped.Pending, r)
		case models.RequestAccepted:
			grouped.Accepted = append(grouped.Accepted, r)
		case models.RequestRejected:
			grouped.Rejected = append(grouped.Rejected, r)
		}
	}
	return &grouped, nil
}

// RemoveFriend takes each user out of the other's friend set. It is
// independent of the request state machine.
func RemoveFriend(userID, friendID uint) error {
	user, err := GetUser(userID)
	if err != nil {
		return err
	}
	friend, err := GetUser(friendID)
	if err != nil {
		return err
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Association("Friends").Delete(friend); err != nil {
			return err
		}
		return tx.Model(friend).Association("Friends").Delete(user)
	})
}
