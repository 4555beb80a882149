package waypoint

import "time"

type Waypoint struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	ElevationM  float64   `json:"elevation_m"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Confidence is the estimate that a session's track actually reached a
// waypoint, derived from the closest recorded point.
type Confidence struct {
	WaypointID   string  `json:"waypoint_id"`
	SessionID    string  `json:"session_id"`
	MinDistanceM float64 `json:"min_distance_m"`
	Score        float64 `json:"score"`
	Reached      bool    `json:"reached"`
}
