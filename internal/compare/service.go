package compare

import (
	"context"

	"backend-wayshare/internal/db"
	"backend-wayshare/internal/shared/geo"
)

type Service struct {
	db          db.Querier
	thresholdKm float64
}

func NewService(querier db.Querier, thresholdKm float64) *Service {
	if thresholdKm <= 0 {
		thresholdKm = DefaultCoverageThresholdKm
	}
	return &Service{db: querier, thresholdKm: thresholdKm}
}

// CompareSessionToRoute loads a session's recorded track and a route's
// planned track and computes the comparison statistics. A thresholdKm of 0
// falls back to the service default.
func (s *Service) CompareSessionToRoute(ctx context.Context, sessionID, routeID string, thresholdKm float64) (Stats, error) {
	if thresholdKm <= 0 {
		thresholdKm = s.thresholdKm
	}

	planned, err := s.plannedTrack(ctx, routeID)
	if err != nil {
		return Stats{}, err
	}
	actual, err := s.actualTrack(ctx, sessionID)
	if err != nil {
		return Stats{}, err
	}

	return Compare(planned, actual, thresholdKm), nil
}

func (s *Service) plannedTrack(ctx context.Context, routeID string) ([]geo.Point, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ST_Y(location::geometry), ST_X(location::geometry), COALESCE(elevation_m,0)
		FROM route_points WHERE route_id=$1
		ORDER BY seq
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []geo.Point
	for rows.Next() {
		var p geo.Point
		if err := rows.Scan(&p.Lat, &p.Lng, &p.ElevationM); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *Service) actualTrack(ctx context.Context, sessionID string) ([]geo.Point, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ST_Y(location::geometry), ST_X(location::geometry), COALESCE(elevation_m,0), recorded_at
		FROM locations WHERE session_id=$1
		ORDER BY recorded_at
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []geo.Point
	for rows.Next() {
		var p geo.Point
		if err := rows.Scan(&p.Lat, &p.Lng, &p.ElevationM, &p.RecordedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}
