package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"
)

// FriendRepository definition friend request persistence
type FriendRepository interface {
	CreateRequest(ctx context.Context, req *domain.FriendRequest) error
	FindRequestByID(ctx context.Context, id int64) (*domain.FriendRequest, error)
	FindPendingBetween(ctx context.Context, requesterID, receiverID string) (*domain.FriendRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FriendRequestStatus) error
	ListPendingFor(ctx context.Context, receiverID string) ([]domain.FriendRequest, error)
	ListFriends(ctx context.Context, fanID string) ([]domain.Friend, error)
}

type friendRepository struct {
	db *pgxpool.Pool
}

// NewFriendRepository create a FriendRepository
func NewFriendRepository(db *pgxpool.Pool) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateRequest(ctx context.Context, req *domain.FriendRequest) error {
	return r.db.QueryRow(ctx,
		"INSERT INTO friend_request(requester_id, receiver_id, status) VALUES ($1, $2, $3) RETURNING id",
		req.RequesterID, req.ReceiverID, req.Status).Scan(&req.ID)
}

func (r *friendRepository) FindRequestByID(ctx context.Context, id int64) (*domain.FriendRequest, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, requester_id, receiver_id, status, created_at, responded_at FROM friend_request WHERE id = $1", id)

	var req domain.FriendRequest
	err := row.Scan(&req.ID, &req.RequesterID, &req.ReceiverID, &req.Status, &req.CreatedAt, &req.RespondedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("friend request not found")
		}
		return nil, err
	}
	return &req, nil
}

func (r *friendRepository) FindPendingBetween(ctx context.Context, requesterID, receiverID string) (*domain.FriendRequest, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, requester_id, receiver_id, status, created_at, responded_at
		 FROM friend_request
		 WHERE status = $1
		   AND ((requester_id = $2 AND receiver_id = $3) OR (requester_id = $3 AND receiver_id = $2))`,
		domain.FriendRequestPending, requesterID, receiverID)

	var req domain.FriendRequest
	err := row.Scan(&req.ID, &req.RequesterID, &req.ReceiverID, &req.Status, &req.CreatedAt, &req.RespondedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *friendRepository) UpdateStatus(ctx context.Context, id int64, status domain.FriendRequestStatus) error {
	_, err := r.db.Exec(ctx,
		"UPDATE friend_request SET status = $1, responded_at = $2 WHERE id = $3",
		status, time.Now(), id)
	return err
}

func (r *friendRepository) ListPendingFor(ctx context.Context, receiverID string) ([]domain.FriendRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, requester_id, receiver_id, status, created_at, responded_at
		 FROM friend_request WHERE receiver_id = $1 AND status = $2 ORDER BY created_at DESC`,
		receiverID, domain.FriendRequestPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.FriendRequest
	for rows.Next() {
		var req domain.FriendRequest
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.ReceiverID, &req.Status, &req.CreatedAt, &req.RespondedAt); err != nil {
			return nil, err
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func (r *friendRepository) ListFriends(ctx context.Context, fanID string) ([]domain.Friend, error) {
	// 已接受的邀請裡，把不是自己的那一方 join 出會員資料
	rows, err := r.db.Query(ctx,
		`SELECT f.fan_id, f.username, f.avatar_url, f.favorite_team
		 FROM friend_request fr
		 JOIN fan f ON f.fan_id = CASE WHEN fr.requester_id = $1 THEN fr.receiver_id ELSE fr.requester_id END
		 WHERE fr.status = $2 AND (fr.requester_id = $1 OR fr.receiver_id = $1)
		 ORDER BY f.username`,
		fanID, domain.FriendRequestAccepted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Friend
	for rows.Next() {
		var fr domain.Friend
		if err := rows.Scan(&fr.FanID, &fr.Username, &fr.AvatarURL, &fr.FavoriteTeam); err != nil {
			return nil, err
		}
		list = append(list, fr)
	}
	return list, rows.Err()
}
