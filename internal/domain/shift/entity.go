package shift

import (
	"time"
)

// Shift is a planned working interval for one user on one calendar day.
// StartTime and EndTime are wall-clock "HH:mm" strings and are not ordered.
type Shift struct {
	ID        string
	UserID    string
	UserName  string // populated by listing queries only
	Date      string // YYYY-MM-DD, unique per user
	StartTime string
	EndTime   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
