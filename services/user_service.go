package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/moom-ugrd-24f/poke-n-pump-server/config"
	"github.com/moom-ugrd-24f/poke-n-pump-server/models"
	"github.com/moom-ugrd-24f/poke-n-pump-server/utils"

	"gorm.io/gorm"
)

const inviteCodeAttempts = 5

type CreateUserInput struct {
	Nickname          string
	ExpoPushToken     string
	Visibility        string
	WorkoutPlan       models.WorkoutPlan
	ShamePostSettings *models.ShamePostSettings
	ProfilePicture    string
}

// CreateUser registers a user with a fresh unique invite code and, as a
// sentinel, adds the user to its own friend set.
func CreateUser(input CreateUserInput) (*models.User, error) {
	var count int64
	if err := config.DB.Model(&models.User{}).Where("nickname = ?", input.Nickname).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: nickname already taken", ErrConflict)
	}

	code, err := uniqueInviteCode()
	if err != nil {
		return nil, err
	}

	user := models.User{
		Nickname:       input.Nickname,
		InviteCode:     code,
		Visibility:     input.Visibility,
		WorkoutPlan:    input.WorkoutPlan,
		ProfilePicture: input.ProfilePicture,
		ExpoPushToken:  input.ExpoPushToken,
		ShamePostSettings: models.ShamePostSettings{
			NoGymStreakLimit: models.DefaultNoGymStreakLimit,
		},
	}
	if input.ShamePostSettings != nil {
		user.ShamePostSettings = *input.ShamePostSettings
	}
	if user.Visibility == "" {
		user.Visibility = models.VisibilityFriend
	}
	if user.ProfilePicture == "" {
		user.ProfilePicture = models.DefaultProfilePicture
	}
	if user.WorkoutPlan.DaysOfWeek == nil {
		user.WorkoutPlan.DaysOfWeek = []int{}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Model(&user).Association("Friends").Append(&user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateRandomUser backs the dev-only endpoint with plausible generated data.
func CreateRandomUser() (*models.User, error) {
	data := utils.RandomUserData()
	user, err := CreateUser(CreateUserInput{
		Nickname:          data.Nickname,
		ExpoPushToken:     data.ExpoPushToken,
		Visibility:        data.Visibility,
		WorkoutPlan:       data.WorkoutPlan,
		ShamePostSettings: &data.ShamePostSettings,
		ProfilePicture:    data.ProfilePicture,
	})
	if err != nil {
		return nil, err
	}
	// Generated streak/XP values are part of the fixture, not of creation.
	user.XP = data.XP
	user.NoGymStreak = data.NoGymStreak
	err = config.DB.Model(user).Updates(map[string]interface{}{
		"xp":            data.XP,
		"no_gym_streak": data.NoGymStreak,
	}).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func uniqueInviteCode() (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := config.DB.Model(&models.User{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique invite code")
}

func GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

type UpdateUserInput struct {
	Nickname          *string                   `json:"nickname"`
	Visibility        *string                   `json:"visibility"`
	XP                *int                      `json:"xp"`
	ExpoPushToken     *string                   `json:"expoPushToken"`
	WorkoutPlan       *models.WorkoutPlan       `json:"workoutPlan"`
	ShamePostSettings *models.ShamePostSettings `json:"shamePostSettings"`
}

// UpdateUser merges only the supplied fields into the stored record.
func UpdateUser(id uint, input UpdateUserInput) (*models.User, error) {
	user, err := GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.Nickname != nil && *input.Nickname != user.Nickname {
		var count int64
		if err := config.DB.Model(&models.User{}).Where("nickname = ?", *input.Nickname).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: nickname already taken", ErrConflict)
		}
		user.Nickname = *input.Nickname
	}
	if input.Visibility != nil {
		if *input.Visibility != models.VisibilityGlobal && *input.Visibility != models.VisibilityFriend {
			return nil, fmt.Errorf("%w: unknown visibility %q", ErrInvalidState, *input.Visibility)
		}
		user.Visibility = *input.Visibility
	}
	if input.XP != nil {
		if *input.XP < 0 {
			return nil, fmt.Errorf("%w: xp must be non-negative", ErrInvalidState)
		}
		user.XP = *input.XP
	}
	if input.ExpoPushToken != nil {
		user.ExpoPushToken = *input.ExpoPushToken
	}
	if input.WorkoutPlan != nil {
		user.WorkoutPlan = *input.WorkoutPlan
	}
	if input.ShamePostSettings != nil {
		user.ShamePostSettings = *input.ShamePostSettings
	}

	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateSettings is the narrow settings-screen update: workout plan and shame
// post settings only, either may be omitted.
func UpdateSettings(id uint, plan *models.WorkoutPlan, shame *models.ShamePostSettings) (*models.User, error) {
	return UpdateUser(id, UpdateUserInput{WorkoutPlan: plan, ShamePostSettings: shame})
}

func DeleteUser(id uint) error {
	user, err := GetUser(id)
	if err != nil {
		return err
	}
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Association("Friends").Clear(); err != nil {
			return err
		}
		// Clear only drops the user_id side; the user also sits on the
		// friend side of other users' sets.
		if err := tx.Exec("DELETE FROM user_friends WHERE friend_id = ?", user.ID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(user).Error
	})
}

// NicknameExists probes a nickname for the signup flow.
func NicknameExists(nickname string) (bool, uint, error) {
	var user models.User
	err := config.DB.Where("nickname = ?", nickname).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, user.ID, nil
}

type FriendSummary struct {
	ID             uint   `json:"id"`
	Nickname       string `json:"nickname"`
	ProfilePicture string `json:"profilePicture"`
}

// ListFriends returns the user's friends with the self sentinel filtered out.
func ListFriends(id uint) ([]FriendSummary, error) {
	var user models.User
	if err := config.DB.Preload("Friends").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}

	friends := make([]FriendSummary, 0, len(user.Friends))
	for _, f := range user.Friends {
		if f.ID == user.ID {
			continue
		}
		friends = append(friends, FriendSummary{
			ID:             f.ID,
			Nickname:       f.Nickname,
			ProfilePicture: f.ProfilePicture,
		})
	}
	return friends, nil
}

// CompleteWorkout marks today attended and resets the missed-gym streak. The
// consecutive gym-days counter only moves on a scheduled day, and only on the
// first completion of that day; attendance is still true until the midnight
// rollover clears it.
func CompleteWorkout(id uint, now time.Time) (*models.User, error) {
	user, err := GetUser(id)
	if err != nil {
		return nil, err
	}

	if !user.TodayAttendance && user.ScheduledOn(int(now.Weekday())) {
		user.GymStreak++
	}
	user.NoGymStreak = 0
	user.TodayAttendance = true

	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

type RankingEntry struct {
	Rank           int    `json:"rank"`
	ID             uint   `json:"id"`
	Nickname       string `json:"nickname"`
	XP             int    `json:"xp"`
	ProfilePicture string `json:"profilePicture"`
}

// WeeklyRanking returns the top limit users by XP. Ties break by id ascending
// so identical inputs always rank identically.
func WeeklyRanking(limit int) ([]RankingEntry, error) {
	var users []models.User
	if err := config.DB.Order("xp DESC, id ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	ranking := make([]RankingEntry, 0, len(users))
	for i, u := range users {
		ranking = append(ranking, RankingEntry{
			Rank:           i + 1,
			ID:             u.ID,
			Nickname:       u.Nickname,
			XP:             u.XP,
			ProfilePicture: u.ProfilePicture,
		})
	}
	return ranking, nil
}

// WeeklyRankingFor additionally resolves the requester's own rank, even when
// they fall outside the returned page.
func WeeklyRankingFor(userID uint, limit int) ([]RankingEntry, *RankingEntry, error) {
	user, err := GetUser(userID)
	if err != nil {
		return nil, nil, err
	}

	ranking, err := WeeklyRanking(limit)
	if err != nil {
		return nil, nil, err
	}

	var ahead int64
	if err := config.DB.Model(&models.User{}).
		Where("xp > ? OR (xp = ? AND id < ?)", user.XP, user.XP, user.ID).
		Count(&ahead).Error; err != nil {
		return nil, nil, err
	}

	mine := &RankingEntry{
		Rank:           int(ahead) + 1,
		ID:             user.ID,
		Nickname:       user.Nickname,
		XP:             user.XP,
		ProfilePicture: user.ProfilePicture,
	}
	return ranking, mine, nil
}
