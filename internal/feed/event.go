// Package feed delivers report change events to connected moderator
// consoles. Services publish events through redis pub/sub so every
// server instance fans them out to its own websocket clients.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pawhelp/pawhelp-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// Channel is the redis pub/sub channel carrying report change events.
const Channel = "reports:changes"

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Summary is the slice of a report the moderation list renders.
type Summary struct {
	ID          uuid.UUID           `json:"id"`
	Kind        models.ReportKind   `json:"kind"`
	Status      models.ReportStatus `json:"status"`
	Published   bool                `json:"published"`
	AnimalType  string              `json:"animal_type,omitempty"`
	AnimalName  string              `json:"animal_name,omitempty"`
	HasEvidence bool                `json:"has_evidence"`
	CreatedAt   time.Time           `json:"created_at"`
}

func Summarize(r *models.Report) Summary {
	return Summary{
		ID:          r.ID,
		Kind:        r.Kind,
		Status:      r.Status,
		Published:   r.Published,
		AnimalType:  r.AnimalType,
		AnimalName:  r.AnimalName,
		HasEvidence: r.UploadObjectKey != nil || r.EvidenceURL != nil,
		CreatedAt:   r.CreatedAt,
	}
}

type Event struct {
	Type   string  `json:"type"`
	Report Summary `json:"report"`
}

// Publisher is what services use to announce report changes.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// RedisPublisher pushes events onto the shared redis channel.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, Channel, payload).Err()
}

// RedisSubscriber is the hub-side counterpart of RedisPublisher: it
// bridges the shared channel into an EventSource stream.
type RedisSubscriber struct {
	rdb    *redis.Client
	pubsub *redis.PubSub
	out    chan Event
}

func NewRedisSubscriber(rdb *redis.Client) *RedisSubscriber {
	return &RedisSubscriber{rdb: rdb, out: make(chan Event, 64)}
}

func (s *RedisSubscriber) Subscribe(ctx context.Context) <-chan Event {
	s.pubsub = s.rdb.Subscribe(ctx, Channel)
	go func() {
		defer close(s.out)
		for msg := range s.pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				slog.Error("feed event decode failed", "error", err)
				continue
			}
			s.out <- ev
		}
	}()
	return s.out
}

// Close tears down the redis subscription; the stream returned by
// Subscribe closes as soon as the in-flight receive returns.
func (s *RedisSubscriber) Close() error {
	if s.pubsub == nil {
		return nil
	}
	return s.pubsub.Close()
}
