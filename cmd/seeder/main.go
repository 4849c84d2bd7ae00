package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/puzzlehut/daily-widget/internal/games"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type dummyUser struct {
	ID   string
	Name string
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	dummyUsers := []dummyUser{
		{ID: "user-1", Name: "Seeder Player A"},
		{ID: "user-2", Name: "Seeder Player B"},
		{ID: "user-3", Name: "Seeder Player C"},
		{ID: "user-4", Name: "Seeder Player D"},
	}

	const batchSize = 100
	const numDays = 365

	log.Info("Preparing to insert dummy leaderboard entries...", "days", numDays, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*10) // 10 columns per entry

	inserted := 0
	flush := func() {
		if len(valueStrings) == 0 {
			return
		}
		stmt := fmt.Sprintf(`
			INSERT INTO leaderboard_entries (id, game, user_id, display_name, puzzle_date,
				moves, hints_used, total_time, score, completed_at)
			VALUES %s;`, strings.Join(valueStrings, ","))

		if _, err := tx.Exec(stmt, valueArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute batch insert: %s", err)
		}
		valueStrings = make([]string, 0, batchSize)
		valueArgs = make([]interface{}, 0, batchSize*10)
		log.Info("Inserted batch", "completed", inserted)
	}

	for day := 0; day < numDays; day++ {
		puzzleDate := time.Now().AddDate(0, 0, -day).Format("2006-01-02")
		for _, game := range games.All {
			config := games.ConfigFor(game)
			for _, u := range dummyUsers {
				moves := int64(4 + rand.Intn(8))
				totalTime := int64(20 + rand.Intn(300))
				score := int64(0)
				if config.SortKey == games.SortByScore {
					score = int64(40 + rand.Intn(60))
				}

				valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
				valueArgs = append(valueArgs,
					uuid.NewString(),
					string(game),
					u.ID,
					u.Name,
					puzzleDate,
					moves,
					int64(rand.Intn(3)), // hints_used
					totalTime,
					score,
					time.Now().Unix(),
				)
				inserted++

				if len(valueStrings) >= batchSize {
					flush()
				}
			}
		}
	}
	flush()

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy leaderboard entries.", "total", inserted, "duration", duration)
}
