package storage

import (
	"context"

	"backend-wayshare/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

// SaveObject records an uploaded object (gpx file, avatar) by URL.
func (s *Service) SaveObject(ctx context.Context, userID, url, kind string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
	`, id, userID, url, kind)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) ListByUser(ctx context.Context, userID, kind string) ([]Object, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, url, kind, created_at
		FROM storage_objects
		WHERE user_id=$1 AND ($2 = '' OR kind=$2)
		ORDER BY created_at DESC
	`, userID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []Object
	for rows.Next() {
		var o Object
		if err := rows.Scan(&o.ID, &o.UserID, &o.URL, &o.Kind, &o.CreatedAt); err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	return objects, nil
}
