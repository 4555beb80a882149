package route

import (
	"context"
	"errors"

	"backend-wayshare/internal/db"
	"backend-wayshare/internal/shared/geo"
	"backend-wayshare/internal/storage"

	"github.com/google/uuid"
	"github.com/tkrajina/gpxgo/gpx"
)

type Service struct {
	db      db.Querier
	objects *storage.Service
}

func NewService(querier db.Querier, objects *storage.Service) *Service {
	return &Service{db: querier, objects: objects}
}

// Upload parses a GPX document and stores it as a planned route. All track
// segments are flattened into one ordered point sequence.
func (s *Service) Upload(ctx context.Context, userID, name string, data []byte) (Route, error) {
	parsed, err := gpx.ParseBytes(data)
	if err != nil {
		return Route{}, err
	}

	points := flattenPoints(parsed)
	if len(points) == 0 {
		return Route{}, errors.New("gpx file contains no track points")
	}

	if name == "" {
		name = parsed.Name
	}
	if name == "" {
		name = "Uploaded route"
	}

	r := Route{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           name,
		TotalDistanceM: geo.TrackDistanceKm(points) * 1000,
		PointCount:     len(points),
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, user_id, name, total_distance_m, point_count)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, r.ID, r.UserID, r.Name, r.TotalDistanceM, r.PointCount)
	if err := row.Scan(&r.CreatedAt); err != nil {
		return Route{}, err
	}

	for i, p := range points {
		_, err := s.db.Exec(ctx, `
			INSERT INTO route_points (route_id, seq, location, elevation_m)
			VALUES ($1,$2, ST_SetSRID(ST_MakePoint($3,$4), 4326)::geography, $5)
		`, r.ID, i, p.Lng, p.Lat, p.ElevationM)
		if err != nil {
			return Route{}, err
		}
		r.Points = append(r.Points, RoutePoint{Seq: i, Lat: p.Lat, Lng: p.Lng, ElevationM: p.ElevationM})
	}

	if s.objects != nil {
		if _, err := s.objects.SaveObject(ctx, userID, "uploads/gpx/"+r.ID+".gpx", "gpx"); err != nil {
			return Route{}, err
		}
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id string) (Route, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, total_distance_m, point_count, created_at
		FROM routes WHERE id=$1
	`, id)
	var r Route
	if err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.TotalDistanceM, &r.PointCount, &r.CreatedAt); err != nil {
		return Route{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT seq, ST_Y(location::geometry), ST_X(location::geometry), COALESCE(elevation_m,0)
		FROM route_points WHERE route_id=$1
		ORDER BY seq
	`, id)
	if err != nil {
		return Route{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var p RoutePoint
		if err := rows.Scan(&p.Seq, &p.Lat, &p.Lng, &p.ElevationM); err != nil {
			return Route{}, err
		}
		r.Points = append(r.Points, p)
	}
	return r, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Route, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, total_distance_m, point_count, created_at
		FROM routes WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.TotalDistanceM, &r.PointCount, &r.CreatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM route_points WHERE route_id=$1`, id); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	return err
}

func flattenPoints(parsed *gpx.GPX) []geo.Point {
	var points []geo.Point
	for _, track := range parsed.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				gp := geo.Point{
					Lat:        p.Latitude,
					Lng:        p.Longitude,
					RecordedAt: p.Timestamp,
				}
				if p.Elevation.NotNull() {
					gp.ElevationM = p.Elevation.Value()
				}
				points = append(points, gp)
			}
		}
	}
	return points
}
