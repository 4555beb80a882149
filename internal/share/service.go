package share

import (
	"context"
	"sort"

	"backend-wayshare/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

// ResolveShareToken looks a session up by its share link token. Used by the
// public viewer page, so no auth context is involved.
func (s *Service) ResolveShareToken(ctx context.Context, token string) (SharedSession, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, status, started_at, COALESCE(total_distance_m,0)
		FROM sessions WHERE share_token=$1
	`, token)
	var shared SharedSession
	if err := row.Scan(&shared.SessionID, &shared.UserID, &shared.Name, &shared.Status, &shared.StartedAt, &shared.DistanceM); err != nil {
		return SharedSession{}, err
	}
	return shared, nil
}

func (s *Service) Follow(ctx context.Context, followerID, followingID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_follows (follower_id, following_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, followerID, followingID)
	return err
}

func (s *Service) Unfollow(ctx context.Context, followerID, followingID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM user_follows WHERE follower_id=$1 AND following_id=$2
	`, followerID, followingID)
	return err
}

func (s *Service) Following(ctx context.Context, userID string) ([]Follow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT follower_id, following_id, created_at
		FROM user_follows WHERE follower_id=$1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var follows []Follow
	for rows.Next() {
		var f Follow
		if err := rows.Scan(&f.FollowerID, &f.FollowingID, &f.CreatedAt); err != nil {
			return nil, err
		}
		follows = append(follows, f)
	}
	return follows, nil
}

// LiveFeed returns the active sessions of users the caller follows,
// decorated with each session's most recent point.
func (s *Service) LiveFeed(ctx context.Context, userID string) ([]LiveSession, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, started_at
		FROM sessions
		WHERE status='active'
		  AND user_id IN (SELECT following_id FROM user_follows WHERE follower_id=$1)
		ORDER BY started_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feed []LiveSession
	var ids []string
	for rows.Next() {
		var entry LiveSession
		if err := rows.Scan(&entry.SessionID, &entry.UserID, &entry.Name, &entry.StartedAt); err != nil {
			return nil, err
		}
		ids = append(ids, entry.SessionID)
		feed = append(feed, entry)
	}

	latest, err := s.loadLatestPoints(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range feed {
		if p, ok := latest[feed[i].SessionID]; ok {
			feed[i].LastLat = p.LastLat
			feed[i].LastLng = p.LastLng
			feed[i].LastSeenAt = p.LastSeenAt
		}
	}
	return sortFeed(feed), nil
}

func (s *Service) loadLatestPoints(ctx context.Context, sessionIDs []string) (map[string]LiveSession, error) {
	if len(sessionIDs) == 0 {
		return map[string]LiveSession{}, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT ON (session_id)
		       session_id, ST_Y(location::geometry), ST_X(location::geometry), recorded_at
		FROM locations WHERE session_id = ANY($1)
		ORDER BY session_id, recorded_at DESC
	`, sessionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := map[string]LiveSession{}
	for rows.Next() {
		var p LiveSession
		if err := rows.Scan(&p.SessionID, &p.LastLat, &p.LastLng, &p.LastSeenAt); err != nil {
			return nil, err
		}
		latest[p.SessionID] = p
	}
	return latest, nil
}

func sortFeed(feed []LiveSession) []LiveSession {
	sort.Slice(feed, func(i, j int) bool {
		return feed[i].StartedAt.After(feed[j].StartedAt)
	})
	return feed
}
