package session

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func TestSessionLifecycle(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO sessions`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Morning run", pgxmock.AnyArg(), "active", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock)
	sess, err := svc.Start(context.Background(), Session{UserID: "user-1", Name: "Morning run"})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if sess.ID == "" || sess.ShareToken == "" || sess.Status != "active" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	mock.ExpectQuery(`SELECT id, user_id, name, started_at`).
		WithArgs(sess.ID).
		WillReturnRows(sessionRows(sess.ID, "active", time.Time{}))

	mock.ExpectExec(`UPDATE sessions SET ended_at`).
		WithArgs(sess.ID, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ended, err := svc.End(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if ended.Status != "ended" || ended.EndedAt.IsZero() {
		t.Fatalf("expected ended session: %+v", ended)
	}

	mock.ExpectExec(`DELETE FROM sessions`).
		WithArgs(sess.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	if err := svc.Delete(context.Background(), sess.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEndAlreadyEndedIsNoop(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	endedAt := time.Now().Add(-time.Hour)
	mock.ExpectQuery(`SELECT id, user_id, name, started_at`).
		WithArgs("sess-1").
		WillReturnRows(sessionRows("sess-1", "ended", endedAt))

	svc := NewService(mock)
	sess, err := svc.End(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if !sess.EndedAt.Equal(endedAt) {
		t.Fatalf("expected stored ended_at to be preserved")
	}

	// no UPDATE expected
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListByUserClampsPagination(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, name, started_at`).
		WithArgs("user-1", 50, 0).
		WillReturnRows(sessionRows("sess-1", "active", time.Time{}))

	svc := NewService(mock)
	sessions, err := svc.ListByUser(context.Background(), "user-1", -5, -10)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("list sessions: %v", err)
	}
}

func TestRotateShareToken(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`UPDATE sessions SET share_token`).
		WithArgs("sess-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService(mock)
	token, err := svc.RotateShareToken(context.Background(), "sess-1")
	if err != nil || token == "" {
		t.Fatalf("rotate token: %v", err)
	}
}

func sessionRows(id, status string, endedAt time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "name", "started_at", "ended_at", "status", "share_token", "total_distance_m", "created_at"}).
		AddRow(id, "user-1", "Morning run", time.Now().Add(-2*time.Hour), endedAt, status, "token-1", 1200.0, time.Now().Add(-2*time.Hour))
}
