package app

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/assafmilner/The-Stand-sub001/internal/member/domain"
	"github.com/assafmilner/The-Stand-sub001/internal/member/repository"
	"github.com/assafmilner/The-Stand-sub001/pkg/database"
	"github.com/assafmilner/The-Stand-sub001/pkg/logger"

	"github.com/streadway/amqp"
)

// TicketUseCase 二手門票應用服務
type TicketUseCase interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	Create(ctx context.Context, ticket *domain.Ticket) error
	Purchase(ctx context.Context, buyerID string, ticketID int64) error
}

type ticketUseCase struct {
	ticketRepo repository.TicketRepository
	rabbit     database.RabbitRepo
}

// NewTicketUseCase 建立一個新的 TicketUseCase
func NewTicketUseCase(ticketRepo repository.TicketRepository, rabbit database.RabbitRepo) TicketUseCase {
	return &ticketUseCase{ticketRepo: ticketRepo, rabbit: rabbit}
}

// List 列出還有庫存且尚未開賽的門票
func (t *ticketUseCase) List(ctx context.Context) ([]domain.Ticket, error) {
	return t.ticketRepo.ListAvailable(ctx)
}

// Create 上架門票並發佈 listed 事件
func (t *ticketUseCase) Create(ctx context.Context, ticket *domain.Ticket) error {
	if ticket.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if ticket.Price < 0 {
		return errors.New("price can't be negative")
	}
	if ticket.MatchAt.Before(time.Now()) {
		return errors.New("match already started")
	}

	if err := t.ticketRepo.CreateTicket(ctx, ticket); err != nil {
		return err
	}

	t.publishEvent(domain.TicketEvent{
		Kind:       "listed",
		TicketID:   ticket.ID,
		SellerID:   ticket.SellerID,
		Quantity:   ticket.Quantity,
		OccurredAt: time.Now(),
	})
	return nil
}

// Purchase 購買一張門票並發佈 purchased 事件
func (t *ticketUseCase) Purchase(ctx context.Context, buyerID string, ticketID int64) error {
	ticket, err := t.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.SellerID == buyerID {
		return errors.New("can't buy your own ticket")
	}

	ok, err := t.ticketRepo.DecrementQuantity(ctx, ticketID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("ticket sold out")
	}

	t.publishEvent(domain.TicketEvent{
		Kind:       "purchased",
		TicketID:   ticketID,
		SellerID:   ticket.SellerID,
		BuyerID:    buyerID,
		Quantity:   1,
		OccurredAt: time.Now(),
	})
	return nil
}

// publishEvent 發佈失敗只記 log，不影響主流程
func (t *ticketUseCase) publishEvent(event domain.TicketEvent) {
	if t.rabbit == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorf("ticket event marshal err :", err)
		return
	}

	if err := t.rabbit.Publish(
		"", // 預設 exchange
		domain.TicketEventsQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		},
	); err != nil {
		logger.Log.Errorf("ticket event publish err :", err)
	}
}
