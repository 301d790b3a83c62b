package redispush

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	ucerrors "github.com/jordan-breton/uws-compat-layer/pkg/common/errors"
	"github.com/jordan-breton/uws-compat-layer/pkg/common/validation"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
)

// ErrSubscriptionLost is reported through OnError when the Pub/Sub
// subscription closes without Close being called.
var ErrSubscriptionLost = errors.New("pub/sub subscription lost")

// Config holds configuration for a PubSubSource.
type Config struct {
	// Redis client for the subscription. Any go-redis universal client
	// (single node, cluster, sentinel) works.
	Redis redis.UniversalClient

	// Channel is the Pub/Sub channel to subscribe to.
	Channel string

	// OnError is called when the subscription fails after being
	// established; the error matches ErrSubscriptionLost via errors.Is.
	// The source still delivers its final signal.
	OnError func(error)
}

// PubSubSource adapts a Redis Pub/Sub channel into a push source: every
// published message payload is forwarded as one chunk. Pub/Sub has no
// end-of-stream marker, so the stream ends only when Close is called or the
// subscription dies.
type PubSubSource struct {
	config Config
	cancel context.CancelFunc
	ctx    context.Context
	pubsub *redis.PubSub

	mu   sync.Mutex
	sub  sync.Once
	once sync.Once
	wg   sync.WaitGroup
}

// New creates a PubSubSource. The subscription is established on Subscribe,
// not here.
func New(config Config) (*PubSubSource, error) {
	if err := validation.ValidateNotNil("redispush", "redis", config.Redis); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty("redispush", "channel", config.Channel); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &PubSubSource{
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Subscribe implements bridge.PushSource. The first call establishes the
// Redis subscription and starts the forwarding goroutine; later calls are
// no-ops.
func (ps *PubSubSource) Subscribe(fn func(chunk []byte, last bool)) {
	ps.sub.Do(func() {
		pubsub := ps.config.Redis.Subscribe(ps.ctx, ps.config.Channel)

		ps.mu.Lock()
		ps.pubsub = pubsub
		ps.mu.Unlock()

		ps.wg.Add(1)
		go ps.forward(pubsub, fn)
	})
}

// Close terminates the subscription and delivers the single final callback.
// It blocks until the forwarding goroutine exits and is safe to call more
// than once.
func (ps *PubSubSource) Close() error {
	var err error
	ps.once.Do(func() {
		ps.cancel()

		ps.mu.Lock()
		pubsub := ps.pubsub
		ps.mu.Unlock()

		if pubsub != nil {
			err = pubsub.Close()
		}
	})
	ps.wg.Wait()
	return err
}

func (ps *PubSubSource) forward(pubsub *redis.PubSub, fn func(chunk []byte, last bool)) {
	defer ps.wg.Done()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				// Subscription closed underneath us.
				if ps.ctx.Err() == nil && ps.config.OnError != nil {
					ps.config.OnError(subscriptionLostError(ps.config.Channel))
				}
				fn(nil, true)
				return
			}
			if msg.Payload == "" {
				// A bare empty chunk would read as end-of-data
				// downstream; empty messages carry nothing anyway.
				continue
			}
			fn([]byte(msg.Payload), false)
		case <-ps.ctx.Done():
			fn(nil, true)
			return
		}
	}
}

// subscriptionLostError describes an unexpected subscription closure on the
// named channel.
func subscriptionLostError(channel string) error {
	return ucerrors.NewOperationError("redispush", "subscribe", ErrSubscriptionLost).
		WithContext("channel " + channel)
}

var _ bridge.PushSource = (*PubSubSource)(nil)
