package session

import "time"

type Session struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at,omitempty"`
	Status         string    `json:"status"`
	ShareToken     string    `json:"share_token,omitempty"`
	TotalDistanceM float64   `json:"total_distance_m"`
	CreatedAt      time.Time `json:"created_at"`
}
