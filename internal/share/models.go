package share

import "time"

// SharedSession is the public view of a session resolved from a share link.
type SharedSession struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	DistanceM float64   `json:"distance_m"`
}

type Follow struct {
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// LiveSession is one entry of the live feed: an active session of a
// followed user together with its most recent point.
type LiveSession struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	StartedAt  time.Time `json:"started_at"`
	LastLat    float64   `json:"last_lat"`
	LastLng    float64   `json:"last_lng"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
