package controllers

import (
	"net/http"

	"github.com/moom-ugrd-24f/poke-n-pump-server/services"

	"github.com/gin-gonic/gin"
)

type sendRequestInput struct {
	SenderID           uint   `json:"senderId" binding:"required"`
	ReceiverInviteCode string `json:"receiverInviteCode" binding:"required"`
}

// SendFriendRequest opens a pending request addressed by invite code. The
// response carries the receiver's push token; notification delivery happens
// client-side.
func SendFriendRequest(c *gin.Context) {
	var input sendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}
	request, pushToken, err := services.SendFriendRequest(input.SenderID, input.ReceiverInviteCode)
	if err != nil {
		respondError(c, err, "Error sending friend request")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":       "Friend request sent successfully",
		"request":       request,
		"expoPushToken": pushToken,
	})
}

type requestIDInput struct {
	RequestID uint `json:"requestId" binding:"required"`
}

func AcceptFriendRequest(c *gin.Context) {
	var input requestIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}
	request, err := services.AcceptFriendRequest(input.RequestID)
	if err != nil {
		respondError(c, err, "Error accepting friend request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted", "friendRequest": request})
}

func RejectFriendRequest(c *gin.Context) {
	var input requestIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}
	request, err := services.RejectFriendRequest(input.RequestID)
	if err != nil {
		respondError(c, err, "Error rejecting friend request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request rejected", "friendRequest": request})
}

// ReceivedRequests lists everything sent to the user, flat by default or
// partitioned into status buckets with ?grouped=true.
func ReceivedRequests(c *gin.Context) {
	id, ok := idParam(c, "userId")
	if !ok {
		return
	}
	if c.Query("grouped") == "true" {
		grouped, err := services.ReceivedRequestsGrouped(id)
		if err != nil {
			respondError(c, err, "Error fetching friend requests")
			return
		}
		c.JSON(http.StatusOK, grouped)
		return
	}
	requests, err := services.ReceivedRequests(id)
	if err != nil {
		respondError(c, err, "Error fetching friend requests")
		return
	}
	c.JSON(http.StatusOK, requests)
}
