package location

import (
	"context"
	"encoding/json"
	"time"

	"backend-wayshare/internal/db"
	"backend-wayshare/internal/shared/geo"
	"backend-wayshare/internal/stream"
)

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(querier db.Querier, hub *stream.Hub) *Service {
	return &Service{db: querier, hub: hub}
}

// Append records a new location for a session, maintains the session's
// running distance and broadcasts the point to live viewers.
func (s *Service) Append(ctx context.Context, sessionID string, input Location) (Location, error) {
	if input.RecordedAt.IsZero() {
		input.RecordedAt = time.Now()
	}

	var lastLat, lastLng float64
	hasPrev := true
	err := s.db.QueryRow(ctx, `
		SELECT ST_Y(location::geometry), ST_X(location::geometry)
		FROM locations
		WHERE session_id=$1
		ORDER BY recorded_at DESC
		LIMIT 1
	`, sessionID).Scan(&lastLat, &lastLng)
	if err != nil {
		hasPrev = false
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO locations (session_id, location, elevation_m, recorded_at, speed_mps)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2,$3), 4326)::geography, $4, $5, $6)
		RETURNING id, created_at
	`, sessionID, input.Lng, input.Lat, input.ElevationM, input.RecordedAt, input.SpeedMps)
	if err := row.Scan(&input.ID, &input.CreatedAt); err != nil {
		return Location{}, err
	}
	input.SessionID = sessionID

	if hasPrev {
		deltaM := geo.HaversineKm(lastLat, lastLng, input.Lat, input.Lng) * 1000
		_, _ = s.db.Exec(ctx, `
			UPDATE sessions
			SET total_distance_m = COALESCE(total_distance_m,0) + $2
			WHERE id=$1
		`, sessionID, deltaM)
	}

	if s.hub != nil {
		payload, _ := json.Marshal(input)
		s.hub.Broadcast(sessionID, payload)
	}

	return input, nil
}

func (s *Service) List(ctx context.Context, sessionID string, limit, offset int) ([]Location, error) {
	if limit <= 0 || limit > 1000 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, ST_Y(location::geometry), ST_X(location::geometry), COALESCE(elevation_m,0), recorded_at, COALESCE(speed_mps,0), created_at
		FROM locations WHERE session_id=$1
		ORDER BY recorded_at
		LIMIT $2 OFFSET $3
	`, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Location
	for rows.Next() {
		var p Location
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Lat, &p.Lng, &p.ElevationM, &p.RecordedAt, &p.SpeedMps, &p.CreatedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *Service) Latest(ctx context.Context, sessionID string) (Location, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, session_id, ST_Y(location::geometry), ST_X(location::geometry), COALESCE(elevation_m,0), recorded_at, COALESCE(speed_mps,0), created_at
		FROM locations WHERE session_id=$1
		ORDER BY recorded_at DESC
		LIMIT 1
	`, sessionID)
	var p Location
	if err := row.Scan(&p.ID, &p.SessionID, &p.Lat, &p.Lng, &p.ElevationM, &p.RecordedAt, &p.SpeedMps, &p.CreatedAt); err != nil {
		return Location{}, err
	}
	return p, nil
}

func (s *Service) Purge(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM locations WHERE session_id=$1`, sessionID)
	return err
}
