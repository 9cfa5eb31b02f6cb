package database

import (
	"context"
	"time"

	"github.com/lysyi3m/portfolio-api/app/contact"
)

type MessageRepository interface {
	CreateMessage(ctx context.Context, msg contact.Message) error
	ListMessages(ctx context.Context, filter contact.ListFilter) ([]contact.Message, int, error)
	UpdateMessageStatus(ctx context.Context, id string, status contact.Status, updatedAt time.Time) (bool, error)
	GetMessageCount(ctx context.Context) (int, error)
}
