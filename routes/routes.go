package routes

import (
	"os"

	"github.com/moom-ugrd-24f/poke-n-pump-server/controllers"
	"github.com/moom-ugrd-24f/poke-n-pump-server/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Uploaded profile pictures are served straight from disk.
	r.Static("/uploads", "./uploads")

	api := r.Group("/api")
	api.Use(middlewares.RequireDB())

	users := api.Group("/users")
	{
		users.POST("", controllers.CreateUser)
		users.GET("/exists/:nickname", controllers.NicknameExists)
		users.GET("/weekly-ranking", controllers.WeeklyRanking)
		users.GET("/weekly-ranking/:userId", controllers.WeeklyRankingFor)
		users.GET("/:id", controllers.GetUser)
		users.PUT("/:id", controllers.UpdateUser)
		users.DELETE("/:id", controllers.DeleteUser)
		users.PUT("/:id/settings", controllers.UpdateSettings)
		users.GET("/:id/friends", controllers.ListFriends)
		users.POST("/:id/remove-friend", controllers.RemoveFriend)
		users.GET("/:id/poke-list", controllers.PokeList)
		users.POST("/:id/complete-workout", controllers.CompleteWorkout)

		if os.Getenv("ENABLE_DEV_ROUTES") == "true" {
			users.POST("/random", controllers.CreateRandomUser)
		}
	}

	friendRequests := api.Group("/friend-requests")
	{
		friendRequests.POST("/send", controllers.SendFriendRequest)
		friendRequests.POST("/accept", controllers.AcceptFriendRequest)
		friendRequests.POST("/reject", controllers.RejectFriendRequest)
		friendRequests.GET("/:userId/received-requests", controllers.ReceivedRequests)
	}

	pokes := api.Group("/pokes")
	{
		pokes.POST("", controllers.CreatePoke)
		pokes.GET("/:receiverId", controllers.ListPokes)
		pokes.DELETE("/:pokeId", controllers.DeletePoke)
	}

	return r
}
