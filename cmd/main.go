package main

import (
	"log"
	"os"

	"github.com/moom-ugrd-24f/poke-n-pump-server/config"
	"github.com/moom-ugrd-24f/poke-n-pump-server/routes"
	"github.com/moom-ugrd-24f/poke-n-pump-server/services"
	"github.com/moom-ugrd-24f/poke-n-pump-server/utils"

	"github.com/robfig/cron/v3"
)

func main() {
	config.InitDB()
	utils.InitStorage()

	// Midnight rollover, host-local time. No retry: a failed run is logged
	// and the next scheduled run picks the state up.
	c := cron.New()
	if _, err := c.AddFunc("0 0 * * *", func() {
		if err := services.RollNoGymStreaks(); err != nil {
			log.Printf("noGymStreak rollover failed: %v", err)
			return
		}
		log.Printf("noGymStreak and todayAttendance updated")
	}); err != nil {
		log.Fatalf("Could not schedule streak rollover: %v", err)
	}
	c.Start()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	r.Run(":" + port)
}
