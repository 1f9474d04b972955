package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"
)

// TicketRepository definition ticket persistence
type TicketRepository interface {
	CreateTicket(ctx context.Context, ticket *domain.Ticket) error
	FindByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListAvailable(ctx context.Context) ([]domain.Ticket, error)
	DecrementQuantity(ctx context.Context, id int64) (bool, error)
}

type ticketRepository struct {
	db *pgxpool.Pool
}

// NewTicketRepository create a TicketRepository
func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) CreateTicket(ctx context.Context, ticket *domain.Ticket) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO ticket(seller_id, home_team, away_team, stadium, match_at, price, quantity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		ticket.SellerID, ticket.HomeTeam, ticket.AwayTeam, ticket.Stadium,
		ticket.MatchAt, ticket.Price, ticket.Quantity).Scan(&ticket.ID)
}

func (r *ticketRepository) FindByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, seller_id, home_team, away_team, stadium, match_at, price, quantity, created_at
		 FROM ticket WHERE id = $1`, id)

	var t domain.Ticket
	err := row.Scan(&t.ID, &t.SellerID, &t.HomeTeam, &t.AwayTeam, &t.Stadium,
		&t.MatchAt, &t.Price, &t.Quantity, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("ticket not found")
		}
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepository) ListAvailable(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, seller_id, home_team, away_team, stadium, match_at, price, quantity, created_at
		 FROM ticket WHERE quantity > 0 AND match_at > now() ORDER BY match_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.SellerID, &t.HomeTeam, &t.AwayTeam, &t.Stadium,
			&t.MatchAt, &t.Price, &t.Quantity, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// DecrementQuantity 庫存夠才扣，用 WHERE quantity > 0 避免超賣
func (r *ticketRepository) DecrementQuantity(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE ticket SET quantity = quantity - 1 WHERE id = $1 AND quantity > 0", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
