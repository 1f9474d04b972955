package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"
)

// FanRepository definition get Fan info
type FanRepository interface {
	CreateFan(ctx context.Context, fan *domain.Fan) error
	FindByFan(ctx context.Context, fanQuery *domain.FanQuery) (*domain.Fan, error)
	UpdateProfile(ctx context.Context, fanID string, update *domain.ProfileUpdate) error
	UpdateAvatar(ctx context.Context, fanID, avatarURL string) error
}

type fanRepository struct {
	db *pgxpool.Pool
}

// NewFanRepository create a FanRepository
func NewFanRepository(db *pgxpool.Pool) FanRepository {
	return &fanRepository{db: db}
}

func (r *fanRepository) CreateFan(ctx context.Context, fan *domain.Fan) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO fan(fan_id, username, email, password, favorite_team) VALUES ($1, $2, $3, $4, $5)",
		fan.FanID, fan.Username, fan.Email, fan.Password, fan.FavoriteTeam)
	return err
}

func (r *fanRepository) FindByFan(ctx context.Context, fanQuery *domain.FanQuery) (*domain.Fan, error) {
	queryStr := "SELECT id, fan_id, username, email, password, favorite_team, location, bio, avatar_url, created_at FROM fan WHERE 1=1"
	params := []interface{}{}
	paramCount := 1

	if fanQuery.Email != nil {
		queryStr += fmt.Sprintf(" AND email = $%d", paramCount)
		params = append(params, *fanQuery.Email)
		paramCount++
	}
	if fanQuery.FanID != nil {
		queryStr += fmt.Sprintf(" AND fan_id = $%d", paramCount)
		params = append(params, *fanQuery.FanID)
		paramCount++
	}
	if fanQuery.ID != nil {
		queryStr += fmt.Sprintf(" AND id = $%d", paramCount)
		params = append(params, *fanQuery.ID)
		paramCount++
	}

	row := r.db.QueryRow(ctx, queryStr, params...)
	var fan domain.Fan
	err := row.Scan(&fan.ID, &fan.FanID, &fan.Username, &fan.Email, &fan.Password,
		&fan.FavoriteTeam, &fan.Location, &fan.Bio, &fan.AvatarURL, &fan.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("no fan found with given criteria")
		}
		return nil, err
	}

	return &fan, nil
}

func (r *fanRepository) UpdateProfile(ctx context.Context, fanID string, update *domain.ProfileUpdate) error {
	queryStr := "UPDATE fan SET fan_id = fan_id"
	params := []interface{}{}
	paramCount := 1

	if update.Username != nil {
		queryStr += fmt.Sprintf(", username = $%d", paramCount)
		params = append(params, *update.Username)
		paramCount++
	}
	if update.FavoriteTeam != nil {
		queryStr += fmt.Sprintf(", favorite_team = $%d", paramCount)
		params = append(params, *update.FavoriteTeam)
		paramCount++
	}
	if update.Location != nil {
		queryStr += fmt.Sprintf(", location = $%d", paramCount)
		params = append(params, *update.Location)
		paramCount++
	}
	if update.Bio != nil {
		queryStr += fmt.Sprintf(", bio = $%d", paramCount)
		params = append(params, *update.Bio)
		paramCount++
	}

	queryStr += fmt.Sprintf(" WHERE fan_id = $%d", paramCount)
	params = append(params, fanID)

	_, err := r.db.Exec(ctx, queryStr, params...)
	return err
}

func (r *fanRepository) UpdateAvatar(ctx context.Context, fanID, avatarURL string) error {
	_, err := r.db.Exec(ctx, "UPDATE fan SET avatar_url = $1 WHERE fan_id = $2", avatarURL, fanID)
	return err
}
