package repository

import (
	"fmt"
	"time"
)

// Alarm represents an alarm row. AtMinute is minutes since midnight.
type Alarm struct {
	ID        string
	AtMinute  int
	Label     string
	CreatedAt time.Time
}

// Clock formats AtMinute as HH:MM.
func (a Alarm) Clock() string {
	return fmt.Sprintf("%02d:%02d", a.AtMinute/60, a.AtMinute%60)
}

// ShortID is the first block of the alarm's uuid.
func (a Alarm) ShortID() string {
	if len(a.ID) < 8 {
		return a.ID
	}
	return a.ID[:8]
}
