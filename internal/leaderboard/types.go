package leaderboard

import (
	"database/sql"
	"sync"
	"time"

	"github.com/puzzlehut/daily-widget/internal/events"
)

// Entry is one row on a daily leaderboard.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	PuzzleDate  string    `json:"puzzleDate"`
	Moves       int       `json:"moves"`
	HintsUsed   int       `json:"hintsUsed"`
	TotalTime   int64     `json:"totalTime"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// viewLimit caps the visible leaderboard at the top entries.
const viewLimit = 20

// store handles leaderboard queries and submissions. The current view lives
// only as long as the modal that asked for it; it is recomputed on demand.
type store struct {
	db  *sql.DB
	bus events.Bus

	mu          sync.RWMutex
	current     []Entry
	currentDate string
	lastErr     error
}
