package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/moom-ugrd-24f/poke-n-pump-server/models"
)

// RandomUserData builds plausible field values for the dev-only random user
// endpoint. Today is always part of the workout plan so the new user shows up
// in poke lists, and 70% of the time the streak exceeds the shame limit.
func RandomUserData() models.User {
	visibility := models.VisibilityFriend
	if rand.Float64() > 0.5 {
		visibility = models.VisibilityGlobal
	}

	today := int(time.Now().Weekday())
	days := make([]int, 0, 7)
	for d := 0; d < 7; d++ {
		if rand.Float64() > 0.5 {
			days = append(days, d)
		}
	}
	hasToday := false
	for _, d := range days {
		if d == today {
			hasToday = true
			break
		}
	}
	if !hasToday {
		days = append(days, today)
	}

	limit := rand.Intn(10) + 1
	streak := rand.Intn(limit)
	if rand.Float64() > 0.3 {
		streak = limit + rand.Intn(10)
	}

	return models.User{
		Nickname:       fmt.Sprintf("user_%05d", rand.Intn(100000)),
		XP:             rand.Intn(11) * 10,
		ProfilePicture: models.DefaultProfilePicture,
		Visibility:     visibility,
		WorkoutPlan:    models.WorkoutPlan{DaysOfWeek: days},
		NoGymStreak:    streak,
		ShamePostSettings: models.ShamePostSettings{
			IsEnabled:        rand.Float64() > 0.5,
			NoGymStreakLimit: limit,
		},
		ExpoPushToken: fmt.Sprintf("expoToken_%010d", rand.Intn(1_000_000_000)),
	}
}
