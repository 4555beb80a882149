package route

import (
	"context"
	"testing"
	"time"

	"backend-wayshare/internal/storage"

	"github.com/pashagolub/pgxmock/v3"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="wayshare-test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Waterfront loop</name>
    <trkseg>
      <trkpt lat="47.6062" lon="-122.3321"><ele>10</ele></trkpt>
      <trkpt lat="47.6205" lon="-122.3493"><ele>20</ele></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestUpload(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO routes`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Morning loop", pgxmock.AnyArg(), 2).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	mock.ExpectExec(`INSERT INTO route_points`).
		WithArgs(pgxmock.AnyArg(), 0, -122.3321, 47.6062, 10.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO route_points`).
		WithArgs(pgxmock.AnyArg(), 1, -122.3493, 47.6205, 20.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "gpx").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock, storage.NewService(mock))
	uploaded, err := svc.Upload(context.Background(), "user-1", "Morning loop", []byte(sampleGPX))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if uploaded.PointCount != 2 || len(uploaded.Points) != 2 {
		t.Fatalf("expected 2 points: %+v", uploaded)
	}
	if uploaded.TotalDistanceM < 1500 || uploaded.TotalDistanceM > 3000 {
		t.Fatalf("unexpected distance: %v", uploaded.TotalDistanceM)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUploadCorruptGPX(t *testing.T) {
	svc := NewService(nil, nil)
	if _, err := svc.Upload(context.Background(), "user-1", "", []byte("not gpx")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestUploadEmptyGPX(t *testing.T) {
	empty := `<?xml version="1.0"?><gpx version="1.1" creator="t" xmlns="http://www.topografix.com/GPX/1/1"></gpx>`
	svc := NewService(nil, nil)
	if _, err := svc.Upload(context.Background(), "user-1", "", []byte(empty)); err == nil {
		t.Fatalf("expected error for gpx without points")
	}
}

func TestGetWithPoints(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, name, total_distance_m, point_count, created_at`).
		WithArgs("route-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "total_distance_m", "point_count", "created_at"}).
			AddRow("route-1", "user-1", "Loop", 2200.0, 2, time.Now()))

	mock.ExpectQuery(`FROM route_points WHERE route_id=\$1`).
		WithArgs("route-1").
		WillReturnRows(pgxmock.NewRows([]string{"seq", "lat", "lng", "elevation_m"}).
			AddRow(0, 47.6062, -122.3321, 10.0).
			AddRow(1, 47.6205, -122.3493, 20.0))

	svc := NewService(mock, nil)
	loaded, err := svc.Get(context.Background(), "route-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(loaded.Points) != 2 || loaded.Points[1].Seq != 1 {
		t.Fatalf("unexpected points: %+v", loaded.Points)
	}
}

func TestListAndDelete(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM routes WHERE user_id=\$1`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "total_distance_m", "point_count", "created_at"}).
			AddRow("route-1", "user-1", "Loop", 2200.0, 2, time.Now()))

	svc := NewService(mock, nil)
	routes, err := svc.ListByUser(context.Background(), "user-1")
	if err != nil || len(routes) != 1 {
		t.Fatalf("list: %v", err)
	}

	mock.ExpectExec(`DELETE FROM route_points`).
		WithArgs("route-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM routes`).
		WithArgs("route-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := svc.Delete(context.Background(), "route-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
