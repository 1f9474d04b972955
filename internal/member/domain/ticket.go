package domain

import "time"

// TicketEventsQueue 票券異動事件發佈的 RabbitMQ queue 名稱
const TicketEventsQueue = "ticket_events"

// Ticket 二手球賽門票
type Ticket struct {
	ID        int64
	SellerID  string
	HomeTeam  string
	AwayTeam  string
	Stadium   string
	MatchAt   time.Time
	Price     float64
	Quantity  int
	CreatedAt time.Time
}

// TicketEvent 票券異動事件 (發佈到消息佇列)
type TicketEvent struct {
	Kind       string    `json:"kind"` // "listed" 或 "purchased"
	TicketID   int64     `json:"ticketId"`
	SellerID   string    `json:"sellerId"`
	BuyerID    string    `json:"buyerId,omitempty"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurredAt"`
}
