package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/moom-ugrd-24f/poke-n-pump-server/config"
	"github.com/moom-ugrd-24f/poke-n-pump-server/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// setupTestDB points config.DB at a fresh in-memory sqlite database for the
// duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.FriendRequest{}, &models.Poke{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	config.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		config.DB = nil
	})
}

var inviteSeq atomic.Int64

// newTestUser inserts a user with sane defaults; mut tweaks fields before the
// insert. The self-friend sentinel is added like CreateUser does.
func newTestUser(t *testing.T, nickname string, mut func(*models.User)) *models.User {
	t.Helper()
	u := &models.User{
		Nickname:       nickname,
		InviteCode:     fmt.Sprintf("%06d", inviteSeq.Add(1)),
		Visibility:     models.VisibilityFriend,
		ProfilePicture: models.DefaultProfilePicture,
		WorkoutPlan:    models.WorkoutPlan{DaysOfWeek: []int{0, 1, 2, 3, 4, 5, 6}},
		ExpoPushToken:  "expo-" + nickname,
		ShamePostSettings: models.ShamePostSettings{
			NoGymStreakLimit: models.DefaultNoGymStreakLimit,
		},
	}
	if mut != nil {
		mut(u)
	}
	if err := config.DB.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", nickname, err)
	}
	if err := config.DB.Model(u).Association("Friends").Append(u); err != nil {
		t.Fatalf("self-friend %s: %v", nickname, err)
	}
	return u
}

// befriend links two users symmetrically, as an accepted request would.
func befriend(t *testing.T, a, b *models.User) {
	t.Helper()
	if err := config.DB.Model(a).Association("Friends").Append(b); err != nil {
		t.Fatalf("befriend: %v", err)
	}
	if err := config.DB.Model(b).Association("Friends").Append(a); err != nil {
		t.Fatalf("befriend: %v", err)
	}
}

// friendIDs reloads the user's friend set, self sentinel excluded.
func friendIDs(t *testing.T, id uint) map[uint]bool {
	t.Helper()
	var u models.User
	if err := config.DB.Preload("Friends").First(&u, id).Error; err != nil {
		t.Fatalf("reload user %d: %v", id, err)
	}
	out := make(map[uint]bool)
	for _, f := range u.Friends {
		if f.ID != id {
			out[f.ID] = true
		}
	}
	return out
}
