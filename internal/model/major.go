package model

import "time"

// Major represents a field of study. Majors are reference data seeded by
// migration and never deleted while students reference them.
type Major struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
