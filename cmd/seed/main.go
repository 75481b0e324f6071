// cmd/seed - Imports achievement and challenge definitions from a JSON file
// into the engine database.
//
// Usage: go run ./cmd/seed [seed.json]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"campusquest/database"
	"campusquest/models"
	"campusquest/services"

	"github.com/joho/godotenv"
)

type seedFile struct {
	Achievements []services.CreateAchievementInput `json:"achievements"`
	Challenges   []seedChallenge                   `json:"challenges"`
}

type seedChallenge struct {
	services.CreateChallengeInput
	DurationHours int `json:"duration_hours"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	path := "./seed.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read seed file:", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		log.Fatal("Failed to parse seed file:", err)
	}

	database.InitDB()
	db := database.GetDB()

	achievementSvc := services.NewAchievementService(db)
	challengeSvc := services.NewChallengeService(db)

	created, skipped := 0, 0
	for _, input := range seed.Achievements {
		if _, err := achievementSvc.Create(input); err != nil {
			log.Printf("Skipping achievement %q: %v", input.Name, err)
			skipped++
			continue
		}
		created++
	}
	fmt.Printf("Achievements: %d created, %d skipped\n", created, skipped)

	created, skipped = 0, 0
	for _, sc := range seed.Challenges {
		input := sc.CreateChallengeInput
		if input.StartTime.IsZero() {
			input.StartTime = time.Now()
		}
		if input.EndTime.IsZero() {
			hours := sc.DurationHours
			if hours <= 0 {
				hours = 72
			}
			input.EndTime = input.StartTime.Add(time.Duration(hours) * time.Hour)
		}

		var count int64
		db.Model(&models.Challenge{}).
			Where("event_id = ? AND title = ?", input.EventID, input.Title).
			Count(&count)
		if count > 0 {
			skipped++
			continue
		}

		if _, err := challengeSvc.Create(input); err != nil {
			log.Printf("Skipping challenge %q: %v", input.Title, err)
			skipped++
			continue
		}
		created++
	}
	fmt.Printf("Challenges: %d created, %d skipped\n", created, skipped)
}
