package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/moom-ugrd-24f/poke-n-pump-server/models"
	"github.com/moom-ugrd-24f/poke-n-pump-server/services"
	"github.com/moom-ugrd-24f/poke-n-pump-server/utils"

	"github.com/gin-gonic/gin"
)

const weeklyRankingSize = 10

// The workout plan and shame post settings arrive as JSON (nested object or
// JSON-encoded multipart field) and are schema-checked before storage on
// every write path.

func parseWorkoutPlan(raw []byte) (*models.WorkoutPlan, error) {
	if err := utils.ValidateWorkoutPlan(raw); err != nil {
		return nil, err
	}
	plan := &models.WorkoutPlan{}
	if err := json.Unmarshal(raw, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func parseShamePostSettings(raw []byte) (*models.ShamePostSettings, error) {
	if err := utils.ValidateShamePostSettings(raw); err != nil {
		return nil, err
	}
	settings := &models.ShamePostSettings{}
	if err := json.Unmarshal(raw, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// CreateUser handles the multipart signup form. The workout plan and shame
// post settings arrive as JSON-encoded form fields and are schema-checked
// before anything is stored.
func CreateUser(c *gin.Context) {
	nickname := c.PostForm("nickname")
	pushToken := c.PostForm("expoPushToken")
	if nickname == "" || pushToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "nickname and expoPushToken are required"})
		return
	}

	input := services.CreateUserInput{
		Nickname:      nickname,
		ExpoPushToken: pushToken,
		Visibility:    c.PostForm("visibility"),
	}

	if raw := c.PostForm("workoutPlan"); raw != "" {
		plan, err := parseWorkoutPlan([]byte(raw))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid workout plan", "error": err.Error()})
			return
		}
		input.WorkoutPlan = *plan
	}
	if raw := c.PostForm("shamePostSettings"); raw != "" {
		settings, err := parseShamePostSettings([]byte(raw))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid shame post settings", "error": err.Error()})
			return
		}
		input.ShamePostSettings = settings
	}

	if file, err := c.FormFile("profilePicture"); err == nil && file != nil {
		path, err := utils.SaveProfilePicture(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error storing profile picture", "error": err.Error()})
			return
		}
		input.ProfilePicture = path
	}

	user, err := services.CreateUser(input)
	if err != nil {
		respondError(c, err, "Error creating user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// CreateRandomUser is the dev-only fixture endpoint; the router only mounts
// it when ENABLE_DEV_ROUTES is set.
func CreateRandomUser(c *gin.Context) {
	user, err := services.CreateRandomUser()
	if err != nil {
		respondError(c, err, "Error creating random user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func GetUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := services.GetUser(id)
	if err != nil {
		respondError(c, err, "Error fetching user")
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserInput struct {
	Nickname          *string         `json:"nickname"`
	Visibility        *string         `json:"visibility"`
	XP                *int            `json:"xp"`
	ExpoPushToken     *string         `json:"expoPushToken"`
	WorkoutPlan       json.RawMessage `json:"workoutPlan"`
	ShamePostSettings json.RawMessage `json:"shamePostSettings"`
}

func UpdateUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body updateUserInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}

	input := services.UpdateUserInput{
		Nickname:      body.Nickname,
		Visibility:    body.Visibility,
		XP:            body.XP,
		ExpoPushToken: body.ExpoPushToken,
	}
	if len(body.WorkoutPlan) > 0 {
		plan, err := parseWorkoutPlan(body.WorkoutPlan)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid workout plan", "error": err.Error()})
			return
		}
		input.WorkoutPlan = plan
	}
	if len(body.ShamePostSettings) > 0 {
		settings, err := parseShamePostSettings(body.ShamePostSettings)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid shame post settings", "error": err.Error()})
			return
		}
		input.ShamePostSettings = settings
	}

	user, err := services.UpdateUser(id, input)
	if err != nil {
		respondError(c, err, "Error updating user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteUser(id); err != nil {
		respondError(c, err, "Error deleting user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func NicknameExists(c *gin.Context) {
	exists, id, err := services.NicknameExists(c.Param("nickname"))
	if err != nil {
		respondError(c, err, "Error checking nickname")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists, "id": id})
}

type settingsInput struct {
	WorkoutPlan       json.RawMessage `json:"workoutPlan"`
	ShamePostSettings json.RawMessage `json:"shamePostSettings"`
}

// UpdateSettings is the settings-screen update: workout plan and shame post
// settings, both optional, both schema-checked.
func UpdateSettings(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input settingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}

	var plan *models.WorkoutPlan
	if len(input.WorkoutPlan) > 0 {
		parsed, err := parseWorkoutPlan(input.WorkoutPlan)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid workout plan", "error": err.Error()})
			return
		}
		plan = parsed
	}
	var shame *models.ShamePostSettings
	if len(input.ShamePostSettings) > 0 {
		parsed, err := parseShamePostSettings(input.ShamePostSettings)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid shame post settings", "error": err.Error()})
			return
		}
		shame = parsed
	}

	user, err := services.UpdateSettings(id, plan, shame)
	if err != nil {
		respondError(c, err, "Error updating settings")
		return
	}
	c.JSON(http.StatusOK, user)
}

func ListFriends(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	friends, err := services.ListFriends(id)
	if err != nil {
		respondError(c, err, "Error fetching friends list")
		return
	}
	c.JSON(http.StatusOK, friends)
}

type removeFriendInput struct {
	FriendID uint `json:"friendId" binding:"required"`
}

func RemoveFriend(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input removeFriendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}
	if err := services.RemoveFriend(id, input.FriendID); err != nil {
		respondError(c, err, "Error removing friend")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
}

// PokeList runs the candidate selector for today. An optional limit query
// parameter caps the result; by default it is uncapped.
func PokeList(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
			return
		}
		limit = parsed
	}
	candidates, err := services.GetPokeList(id, time.Now(), limit)
	if err != nil {
		respondError(c, err, "Error fetching poke list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pokeList": candidates})
}

func CompleteWorkout(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := services.CompleteWorkout(id, time.Now())
	if err != nil {
		respondError(c, err, "Error completing workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout completed", "user": user})
}

func WeeklyRanking(c *gin.Context) {
	ranking, err := services.WeeklyRanking(weeklyRankingSize)
	if err != nil {
		respondError(c, err, "Error fetching weekly ranking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeklyRanking": ranking})
}

// WeeklyRankingFor also reports the requester's own rank, even when they are
// outside the top entries.
func WeeklyRankingFor(c *gin.Context) {
	id, ok := idParam(c, "userId")
	if !ok {
		return
	}
	ranking, mine, err := services.WeeklyRankingFor(id, weeklyRankingSize)
	if err != nil {
		respondError(c, err, "Error fetching weekly ranking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeklyRanking": ranking, "myRank": mine})
}
