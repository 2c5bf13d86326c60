package domain

import "time"

type OrderCreatedEvent struct {
	OrderID   string      `json:"order_id"`
	UserID    string      `json:"user_id,omitempty"`
	Items     []OrderItem `json:"items"`
	Total     string      `json:"total"`
	Timestamp time.Time   `json:"timestamp"`
}
