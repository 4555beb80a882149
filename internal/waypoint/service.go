package waypoint

import (
	"context"

	"backend-wayshare/internal/db"

	"github.com/google/uuid"
)

// Distances in meters bounding the reach-confidence falloff.
const (
	reachSureM = 25.0
	reachZeroM = 250.0
)

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

func (s *Service) Create(ctx context.Context, input Waypoint) (Waypoint, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO waypoints (id, name, description, icon, location, elevation_m, created_by)
		VALUES ($1,$2,$3,$4, ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography, $7, $8)
		RETURNING created_at
	`, input.ID, input.Name, input.Description, input.Icon, input.Lng, input.Lat, input.ElevationM, input.CreatedBy)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Waypoint{}, err
	}
	return input, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Waypoint) (Waypoint, error) {
	wp, err := s.Get(ctx, id)
	if err != nil {
		return Waypoint{}, err
	}
	if patch.Name != "" {
		wp.Name = patch.Name
	}
	if patch.Description != "" {
		wp.Description = patch.Description
	}
	if patch.Icon != "" {
		wp.Icon = patch.Icon
	}
	if patch.Lat != 0 {
		wp.Lat = patch.Lat
	}
	if patch.Lng != 0 {
		wp.Lng = patch.Lng
	}
	if patch.ElevationM != 0 {
		wp.ElevationM = patch.ElevationM
	}

	_, err = s.db.Exec(ctx, `
		UPDATE waypoints
		SET name=$2, description=$3, icon=$4,
		    location=ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography,
		    elevation_m=$7
		WHERE id=$1
	`, wp.ID, wp.Name, wp.Description, wp.Icon, wp.Lng, wp.Lat, wp.ElevationM)
	if err != nil {
		return Waypoint{}, err
	}
	return wp, nil
}

func (s *Service) Get(ctx context.Context, id string) (Waypoint, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, icon, ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(elevation_m,0), created_by, created_at
		FROM waypoints WHERE id=$1
	`, id)
	var wp Waypoint
	if err := row.Scan(&wp.ID, &wp.Name, &wp.Description, &wp.Icon, &wp.Lat, &wp.Lng, &wp.ElevationM, &wp.CreatedBy, &wp.CreatedAt); err != nil {
		return Waypoint{}, err
	}
	return wp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM waypoints WHERE id=$1`, id)
	return err
}

func (s *Service) Search(ctx context.Context, lat, lng, radiusKm float64) ([]Waypoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, icon, ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(elevation_m,0), created_by, created_at
		FROM waypoints
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography, $3)
		ORDER BY created_at DESC
	`, lng, lat, radiusKm*1000)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Waypoint
	for rows.Next() {
		var wp Waypoint
		if err := rows.Scan(&wp.ID, &wp.Name, &wp.Description, &wp.Icon, &wp.Lat, &wp.Lng, &wp.ElevationM, &wp.CreatedBy, &wp.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, wp)
	}
	return results, nil
}

// ReachConfidence scores how confidently a session's track reached a
// waypoint: 1 within reachSureM of the closest recorded point, falling
// linearly to 0 at reachZeroM. A session with no points scores 0.
func (s *Service) ReachConfidence(ctx context.Context, waypointID, sessionID string) (Confidence, error) {
	var minDistanceM float64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(MIN(ST_Distance(l.location, w.location)), -1)
		FROM waypoints w, locations l
		WHERE w.id = $1 AND l.session_id = $2
	`, waypointID, sessionID).Scan(&minDistanceM)
	if err != nil {
		return Confidence{}, err
	}

	conf := Confidence{
		WaypointID:   waypointID,
		SessionID:    sessionID,
		MinDistanceM: minDistanceM,
	}
	if minDistanceM < 0 {
		conf.MinDistanceM = 0
		return conf, nil
	}

	switch {
	case minDistanceM <= reachSureM:
		conf.Score = 1
	case minDistanceM >= reachZeroM:
		conf.Score = 0
	default:
		conf.Score = (reachZeroM - minDistanceM) / (reachZeroM - reachSureM)
	}
	conf.Reached = conf.Score >= 0.5
	return conf, nil
}
