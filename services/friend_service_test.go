package services

import (
	"errors"
	"testing"

	"github.com/moom-ugrd-24f/poke-n-pump-server/config"
	"github.com/moom-ugrd-24f/poke-n-pump-server/models"
)

func TestSendFriendRequest(t *testing.T) {
	setupTestDB(t)
	sender := newTestUser(t, "sender", nil)
	receiver := newTestUser(t, "receiver", nil)

	request, pushToken, err := SendFriendRequest(sender.ID, receiver.InviteCode)
	if err != nil {
		t.Fatalf("SendFriendRequest: %v", err)
	}
	if request.Status != models.RequestPending {
		t.Errorf("status = %q, want pending", request.Status)
	}
	if request.ReceiverID != receiver.ID {
		t.Errorf("receiverId = %d, want %d", request.ReceiverID, receiver.ID)
	}
	if pushToken != receiver.ExpoPushToken {
		t.Errorf("pushToken = %q, want the receiver's", pushToken)
	}
}

func TestSendFriendRequestUnknownInviteCode(t *testing.T) {
	setupTestDB(t)
	sender := newTestUser(t, "sender", nil)
	if _, _, err := SendFriendRequest(sender.ID, "ZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSendFriendRequestDuplicate(t *testing.T) {
	setupTestDB(t)
	sender := newTestUser(t, "sender", nil)
	receiver := newTestUser(t, "receiver", nil)

	request, _, err := SendFriendRequest(sender.ID, receiver.InviteCode)
	if err != nil {
		t.Fatalf("first send: %v", err)
	}
	if _, _, err := SendFriendRequest(sender.ID, receiver.InviteCode); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate while pending: err = %v, want ErrConflict", err)
	}

	if _, err := AcceptFriendRequest(request.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, _, err := SendFriendRequest(sender.ID, receiver.InviteCode); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate while accepted: err = %v, want ErrConflict", err)
	}

	// A rejected request is terminal and inactive; a fresh one may follow.
	rejected, _, err := SendFriendRequest(receiver.ID, sender.InviteCode)
	if err != nil {
		t.Fatalf("reverse send: %v", err)
	}
	if _, err := RejectFriendRequest(rejected.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, _, err := SendFriendRequest(receiver.ID, sender.InviteCode); err != nil {
		t.Fatalf("send after rejection: %v", err)
	}
}

func TestAcceptFriendRequestSymmetry(t *testing.T) {
	setupTestDB(t)
	a := newTestUser(t, "a", nil)
	b := newTestUser(t, "b", nil)

	request, _, err := SendFriendRequest(a.ID, b.InviteCode)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	accepted, err := AcceptFriendRequest(request.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != models.RequestAccepted {
		t.Errorf("status = %q, want accepted", accepted.Status)
	}

	if !friendIDs(t, a.ID)[b.ID] || !friendIDs(t, b.ID)[a.ID] {
		t.Errorf("friendship not symmetric after accept")
	}
}

func TestAcceptFriendRequestRequiresPending(t *testing.T) {
	setupTestDB(t)
	a := newTestUser(t, "a", nil)
	b := newTestUser(t, "b", nil)

	request, _, err := SendFriendRequest(a.ID, b.InviteCode)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := AcceptFriendRequest(request.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := AcceptFriendRequest(request.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("double accept: err = %v, want ErrInvalidState", err)
	}
	if _, err := AcceptFriendRequest(99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing request: err = %v, want ErrNotFound", err)
	}
}

func TestAcceptDeduplicatesFriendSets(t *testing.T) {
	setupTestDB(t)
	a := newTestUser(t, "a", nil)
	b := newTestUser(t, "b", nil)
	befriend(t, a, b) // already friends from an earlier exchange

	request := models.FriendRequest{SenderID: a.ID, ReceiverID: b.ID, Status: models.RequestPending}
	if err := config.DB.Create(&request).Error; err != nil {
		t.Fatalf("seed request: %v", err)
	}
	if _, err := AcceptFriendRequest(request.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	var count int64
	if err := config.DB.Table("user_friends").Where("user_id = ? AND friend_id = ?", a.ID, b.ID).Count(&count).Error; err != nil {
		t.Fatalf("count join rows: %v", err)
	}
	if count != 1 {
		t.Errorf("join rows = %d, want 1 (union, not append)", count)
	}
}

func TestRejectFriendRequest(t *testing.T) {
	setupTestDB(t)
	a := newTestUser(t, "a", nil)
	b := newTestUser(t, "b", nil)

	request, _, err := SendFriendRequest(a.ID, b.InviteCode)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	rejected, err := RejectFriendRequest(request.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.RequestRejected {
		t.Errorf("status = %q, want rejected", rejected.Status)
	}
	if len(friendIDs(t, a.ID)) != 0 || len(friendIDs(t, b.ID)) != 0 {
		t.Errorf("reject must not touch friend sets")
	}
}

func TestRemoveFriend(t *testing.T) {
	setupTestDB(t)
	a := newTestUser(t, "a", nil)
	b := newTestUser(t, "b", nil)
	befriend(t, a, b)

	if err := RemoveFriend(a.ID, b.ID); err != nil {
		t.Fatalf("RemoveFriend: %v", err)
	}
	if friendIDs(t, a.ID)[b.ID] || friendIDs(t, b.ID)[a.ID] {
		t.Errorf("friendship not removed symmetrically")
	}

	if err := RemoveFriend(a.ID, 99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown friend: err = %v, want ErrNotFound", err)
	}
	if err := RemoveFriend(99999, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user: err = %v, want ErrNotFound", err)
	}
}

func TestReceivedRequests(t *testing.T) {
	setupTestDB(t)
	receiver := newTestUser(t, "receiver", nil)
	s1 := newTestUser(t, "s1", nil)
	s2 := newTestUser(t, "s2", nil)
	s3 := newTestUser(t, "s3", nil)

	r1, _, _ := SendFriendRequest(s1.ID, receiver.InviteCode)
	r2, _, _ := SendFriendRequest(s2.ID, receiver.InviteCode)
	if _, _, err := SendFriendRequest(s3.ID, receiver.InviteCode); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := AcceptFriendRequest(r1.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := RejectFriendRequest(r2.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	flat, err := ReceivedRequests(receiver.ID)
	if err != nil {
		t.Fatalf("ReceivedRequests: %v", err)
	}
	if len(flat) != 3 {
		t.Fatalf("got %d requests, want 3", len(flat))
	}
	if flat[0].SenderNickname != "s1" {
		t.Errorf("sender nickname = %q, want s1", flat[0].SenderNickname)
	}

	grouped, err := ReceivedRequestsGrouped(receiver.ID)
	if err != nil {
		t.Fatalf("ReceivedRequestsGrouped: %v", err)
	}
	if len(grouped.Pending) != 1 || len(grouped.Accepted) != 1 || len(grouped.Rejected) != 1 {
		t.Errorf("grouped sizes = %d/%d/%d, want 1/1/1",
			len(grouped.Pending), len(grouped.Accepted), len(grouped.Rejected))
	}
}
