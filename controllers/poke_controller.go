package controllers

import (
	"net/http"

	"github.com/moom-ugrd-24f/poke-n-pump-server/services"

	"github.com/gin-gonic/gin"
)

type createPokeInput struct {
	SenderID   uint   `json:"senderId" binding:"required"`
	ReceiverID uint   `json:"receiverId" binding:"required"`
	PokeType   string `json:"pokeType" binding:"required"`
}

func CreatePoke(c *gin.Context) {
	var input createPokeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}
	poke, err := services.CreatePoke(input.SenderID, input.ReceiverID, input.PokeType)
	if err != nil {
		respondError(c, err, "Error sending poke")
		return
	}
	c.JSON(http.StatusCreated, poke)
}

func ListPokes(c *gin.Context) {
	id, ok := idParam(c, "receiverId")
	if !ok {
		return
	}
	pokes, err := services.ListPokes(id)
	if err != nil {
		respondError(c, err, "Error fetching pokes")
		return
	}
	c.JSON(http.StatusOK, pokes)
}

func DeletePoke(c *gin.Context) {
	id, ok := idParam(c, "pokeId")
	if !ok {
		return
	}
	poke, err := services.DeletePoke(id)
	if err != nil {
		respondError(c, err, "Error deleting poke")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Poke deleted", "poke": poke})
}
