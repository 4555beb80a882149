package session

import (
	"context"
	"time"

	"backend-wayshare/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

func (s *Service) Start(ctx context.Context, input Session) (Session, error) {
	input.ID = uuid.NewString()
	input.ShareToken = uuid.NewString()
	if input.StartedAt.IsZero() {
		input.StartedAt = time.Now()
	}
	input.Status = "active"

	row := s.db.QueryRow(ctx, `
		INSERT INTO sessions (id, user_id, name, started_at, status, share_token)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, input.ID, input.UserID, input.Name, input.StartedAt, input.Status, input.ShareToken)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Session{}, err
	}
	return input, nil
}

// End marks a session as ended. Ending an already-ended session leaves it
// untouched and returns the stored state.
func (s *Service) End(ctx context.Context, id string) (Session, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if current.Status == "ended" {
		return current, nil
	}

	current.EndedAt = time.Now()
	current.Status = "ended"
	_, err = s.db.Exec(ctx, `
		UPDATE sessions SET ended_at=$2, status='ended' WHERE id=$1
	`, id, current.EndedAt)
	if err != nil {
		return Session{}, err
	}
	return current, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, started_at, COALESCE(ended_at, 'epoch'::timestamptz), status, share_token, COALESCE(total_distance_m,0), created_at
		FROM sessions WHERE id=$1
	`, id)
	var sess Session
	if err := row.Scan(&sess.ID, &sess.UserID, &sess.Name, &sess.StartedAt, &sess.EndedAt, &sess.Status, &sess.ShareToken, &sess.TotalDistanceM, &sess.CreatedAt); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Session, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, started_at, COALESCE(ended_at, 'epoch'::timestamptz), status, share_token, COALESCE(total_distance_m,0), created_at
		FROM sessions WHERE user_id=$1
		ORDER BY started_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.Name, &sess.StartedAt, &sess.EndedAt, &sess.Status, &sess.ShareToken, &sess.TotalDistanceM, &sess.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	return err
}

// RotateShareToken invalidates any previously shared link for the session.
func (s *Service) RotateShareToken(ctx context.Context, id string) (string, error) {
	token := uuid.NewString()
	_, err := s.db.Exec(ctx, `UPDATE sessions SET share_token=$2 WHERE id=$1`, id, token)
	if err != nil {
		return "", err
	}
	return token, nil
}
