package models

import (
	"gorm.io/gorm"
)

const (
	VisibilityGlobal = "global"
	VisibilityFriend = "friend"
)

// DefaultProfilePicture is served from the static uploads prefix when a user
// never uploaded one.
const DefaultProfilePicture = "uploads/default-profile.jpg"

const DefaultNoGymStreakLimit = 5

type WorkoutPlan struct {
	DaysOfWeek []int `json:"daysOfWeek"` // 0 = Sunday .. 6 = Saturday
}

type ShamePostSettings struct {
	IsEnabled        bool `json:"isEnabled"`
	NoGymStreakLimit int  `json:"noGymStreakLimit"`
}

type User struct {
	gorm.Model
	Nickname          string            `gorm:"uniqueIndex;not null" json:"nickname"`
	InviteCode        string            `gorm:"uniqueIndex;not null;size:6" json:"inviteCode"`
	XP                int               `gorm:"default:0" json:"xp"`
	ProfilePicture    string            `json:"profilePicture"`
	Visibility        string            `gorm:"size:16;default:friend" json:"visibility"`
	WorkoutPlan       WorkoutPlan       `gorm:"serializer:json" json:"workoutPlan"`
	TodayAttendance   bool              `gorm:"default:false" json:"todayAttendance"`
	NoGymStreak       int               `gorm:"default:0" json:"noGymStreak"`
	GymStreak         int               `gorm:"default:0" json:"gymStreak"`
	ShamePostSettings ShamePostSettings `gorm:"embedded;embeddedPrefix:shame_post_" json:"shamePostSettings"`
	ExpoPushToken     string            `gorm:"not null" json:"expoPushToken"`

	// Symmetric except for the self reference added at registration.
	Friends []*User `gorm:"many2many:user_friends" json:"-"`
}

// ScheduledOn reports whether the given local weekday (0-6) is part of the
// user's workout plan.
func (u *User) ScheduledOn(weekday int) bool {
	for _, d := range u.WorkoutPlan.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

// IsShamePostCandidate reports whether the user opted into shame posts and
// their missed-gym streak has gone past their own limit.
func (u *User) IsShamePostCandidate() bool {
	return u.ShamePostSettings.IsEnabled && u.NoGymStreak > u.ShamePostSettings.NoGymStreakLimit
}
