package notify

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/models"
)

// Channel is the Redis pub/sub channel carrying notification events.
const Channel = "notifications"

// Event is the payload published for each created notification.
type Event struct {
	UserID       string              `json:"userId"`
	Notification models.Notification `json:"notification"`
}

// RedisPublisher fans notifications out through Redis pub/sub so every
// hub instance subscribed to the channel can deliver them.
type RedisPublisher struct {
	client *redis.Client
	ctx    context.Context
	log    *logrus.Logger
}

func NewRedisPublisher(client *redis.Client, log *logrus.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, ctx: context.Background(), log: log}
}

func (p *RedisPublisher) Push(userID string, notification models.Notification) {
	data, err := json.Marshal(Event{UserID: userID, Notification: notification})
	if err != nil {
		p.log.WithError(err).Error("failed to marshal notification event")
		return
	}
	if err := p.client.Publish(p.ctx, Channel, data).Err(); err != nil {
		p.log.WithError(err).Error("failed to publish notification event")
	}
}
