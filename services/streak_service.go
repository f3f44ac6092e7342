package services

import (
	"errors"

	"github.com/moom-ugrd-24f/poke-n-pump-server/config"
	"github.com/moom-ugrd-24f/poke-n-pump-server/models"

	"gorm.io/gorm"
)

// RollNoGymStreaks is the midnight rollover: everyone who did not mark
// attendance today gets their missed-gym streak bumped, then the attendance
// flag is cleared for the new day. Both steps run in one transaction so the
// increment always sees pre-reset attendance and a crash cannot land between
// them. The caller logs failures and waits for the next scheduled run.
func RollNoGymStreaks() error {
	if config.DB == nil {
		return errors.New("database unavailable")
	}
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("today_attendance = ?", false).
			UpdateColumn("no_gym_streak", gorm.Expr("no_gym_streak + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("today_attendance = ?", true).
			Update("today_attendance", false).Error
	})
}
