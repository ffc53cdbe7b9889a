package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/events"
)

const (
	defaultPublishTimeout = time.Second
	eventQueueSize        = 256
)

// Redis wraps the go-redis client and the asynchronous event sink that
// mirrors domain events onto a channel.
type Redis struct {
	Client  *redis.Client
	channel string
	logger  *zap.Logger

	publishTimeout time.Duration
	queue          chan events.Event
	stop           chan struct{}
	stopOnce       sync.Once
	attachOnce     sync.Once
	wg             sync.WaitGroup
}

// NewRedis connects to Redis using the provided configuration. It returns
// nil when no address is configured.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if cfg.Addr == "" {
		logger.Info("REDIS_ADDR not provided; event fan-out disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:                  cfg.Addr,
		Password:              cfg.Password,
		DB:                    cfg.DB,
		ContextTimeoutEnabled: true,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return newRedis(client, cfg.Channel, logger)
}

func newRedis(client *redis.Client, channel string, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		Client:         client,
		channel:        channel,
		logger:         logger,
		publishTimeout: defaultPublishTimeout,
		queue:          make(chan events.Event, eventQueueSize),
		stop:           make(chan struct{}),
	}
}

// Close stops the sink, waiting for an in-flight publish, then closes the
// client.
func (r *Redis) Close() {
	if r == nil {
		return
	}
	r.stopOnce.Do(func() { close(r.stop) })
	r.wg.Wait()
	if r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// PublishEvent sends event as JSON on the configured channel. The publish is
// bounded by the sink's own timeout, not only by ctx.
func (r *Redis) PublishEvent(ctx context.Context, event events.Event) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, r.publishTimeout)
	defer cancel()
	return r.Client.Publish(ctx, r.channel, payload).Err()
}

// AttachEventSink mirrors every domain event to Redis. Events are queued and
// published by a background goroutine, so mutations never wait on Redis.
// When the queue is full the event is dropped and logged.
func (r *Redis) AttachEventSink(dispatcher events.Dispatcher) {
	if r == nil || dispatcher == nil {
		return
	}
	r.attachOnce.Do(func() {
		r.wg.Add(1)
		go r.drain()
	})
	events.SubscribeAll(dispatcher, r.enqueue)
}

func (r *Redis) enqueue(_ context.Context, event events.Event) error {
	select {
	case <-r.stop:
		return nil
	default:
	}
	select {
	case r.queue <- event:
	default:
		r.logger.Warn("redis event queue full; dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID))
	}
	return nil
}

func (r *Redis) drain() {
	defer r.wg.Done()
	for {
		select {
		case event := <-r.queue:
			if err := r.PublishEvent(context.Background(), event); err != nil {
				r.logger.Warn("redis publish failed",
					zap.String("event_type", string(event.Type)),
					zap.String("ticket_id", event.TicketID),
					zap.Error(err))
			}
		case <-r.stop:
			return
		}
	}
}
