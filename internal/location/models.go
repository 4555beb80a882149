package location

import "time"

type Location struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	ElevationM float64   `json:"elevation_m"`
	RecordedAt time.Time `json:"recorded_at"`
	SpeedMps   float64   `json:"speed_mps"`
	CreatedAt  time.Time `json:"created_at"`
}
