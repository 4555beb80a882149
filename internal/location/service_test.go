package location

import (
	"context"
	"testing"
	"time"

	"backend-wayshare/internal/stream"

	"github.com/pashagolub/pgxmock/v3"
)

func TestAppendFirstPoint(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT ST_Y\(location::geometry\), ST_X\(location::geometry\)`).
		WithArgs("sess-1").
		WillReturnError(context.Canceled)

	mock.ExpectQuery(`INSERT INTO locations`).
		WithArgs("sess-1", 106.8, -6.2, 12.0, pgxmock.AnyArg(), 1.5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	svc := NewService(mock, nil)
	point, err := svc.Append(context.Background(), "sess-1", Location{Lat: -6.2, Lng: 106.8, ElevationM: 12, SpeedMps: 1.5})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if point.ID != 1 || point.SessionID != "sess-1" {
		t.Fatalf("unexpected point: %+v", point)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppendUpdatesDistanceAndBroadcasts(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT ST_Y\(location::geometry\), ST_X\(location::geometry\)`).
		WithArgs("sess-1").
		WillReturnRows(pgxmock.NewRows([]string{"lat", "lng"}).AddRow(-6.2, 106.8))

	mock.ExpectQuery(`INSERT INTO locations`).
		WithArgs("sess-1", 106.81, -6.21, 0.0, pgxmock.AnyArg(), 0.0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), time.Now()))

	mock.ExpectExec(`UPDATE sessions`).
		WithArgs("sess-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	hub := stream.NewHub(nil)
	viewer := hub.Register("sess-1")
	defer hub.Unregister(viewer)

	svc := NewService(mock, hub)
	if _, err := svc.Append(context.Background(), "sess-1", Location{Lat: -6.21, Lng: 106.81}); err != nil {
		t.Fatalf("append: %v", err)
	}

	select {
	case msg := <-viewer.Send:
		if len(msg) == 0 {
			t.Fatalf("expected broadcast payload")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for broadcast")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAndLatest(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	cols := []string{"id", "session_id", "lat", "lng", "elevation_m", "recorded_at", "speed_mps", "created_at"}

	mock.ExpectQuery(`FROM locations WHERE session_id=\$1`).
		WithArgs("sess-1", 500, 0).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(1), "sess-1", -6.2, 106.8, 10.0, time.Now(), 1.2, time.Now()))

	svc := NewService(mock, nil)
	points, err := svc.List(context.Background(), "sess-1", 0, -1)
	if err != nil || len(points) != 1 {
		t.Fatalf("list points: %v", err)
	}

	mock.ExpectQuery(`FROM locations WHERE session_id=\$1`).
		WithArgs("sess-1").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(2), "sess-1", -6.21, 106.81, 11.0, time.Now(), 1.1, time.Now()))

	latest, err := svc.Latest(context.Background(), "sess-1")
	if err != nil || latest.ID != 2 {
		t.Fatalf("latest point: %v", err)
	}
}

func TestPurge(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM locations`).
		WithArgs("sess-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	svc := NewService(mock, nil)
	if err := svc.Purge(context.Background(), "sess-1"); err != nil {
		t.Fatalf("purge: %v", err)
	}
}
