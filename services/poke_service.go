package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/moom-ugrd-24f/poke-n-pump-server/config"
	"github.com/moom-ugrd-24f/poke-n-pump-server/models"

	"gorm.io/gorm"
)

// CreatePoke appends a poke record. Pokes are immutable once written.
func CreatePoke(senderID, receiverID uint, pokeType string) (*models.Poke, error) {
	poke := models.Poke{
		SenderID:   senderID,
		ReceiverID: receiverID,
		PokeType:   pokeType,
		Timestamp:  time.Now(),
	}
	if err := config.DB.Create(&poke).Error; err != nil {
		return nil, err
	}
	return &poke, nil
}

func ListPokes(receiverID uint) ([]models.Poke, error) {
	var pokes []models.Poke
	if err := config.DB.Where("receiver_id = ?", receiverID).Order("id ASC").Find(&pokes).Error; err != nil {
		return nil, err
	}
	return pokes, nil
}

func DeletePoke(id uint) (*models.Poke, error) {
	var poke models.Poke
	if err := config.DB.First(&poke, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: poke %d", ErrNotFound, id)
		}
		return nil, err
	}
	if err := config.DB.Delete(&poke).Error; err != nil {
		return nil, err
	}
	return &poke, nil
}
