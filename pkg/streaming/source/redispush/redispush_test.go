package redispush_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jordan-breton/uws-compat-layer/internal/testutil"
	ucerrors "github.com/jordan-breton/uws-compat-layer/pkg/common/errors"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/source/redispush"
)

func TestNewValidation(t *testing.T) {
	_, err := redispush.New(redispush.Config{Channel: "events"})
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, ucerrors.IsValidationError(err), true)

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer func() { _ = rdb.Close() }()

	_, err = redispush.New(redispush.Config{Redis: rdb})
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, ucerrors.IsValidationError(err), true)

	src, err := redispush.New(redispush.Config{Redis: rdb, Channel: "events"})
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, src.Close())
}

// testRedis returns a client for the local test instance, skipping the test
// when Redis is not reachable.
func testRedis(t *testing.T) redis.UniversalClient {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		t.Skipf("Redis not available: %v", err)
	}

	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestPubSubSourceForwardsMessages(t *testing.T) {
	rdb := testRedis(t)

	src, err := redispush.New(redispush.Config{
		Redis:   rdb,
		Channel: "uwscompat:test:forward",
	})
	testutil.AssertNoError(t, err)

	sink := testutil.NewMockSink()
	b := bridge.New(sink)
	testutil.AssertNoError(t, b.Attach(src))

	// Publish until the subscription sees a message; subscription setup
	// races with the first publish.
	ctx, cancel := context.WithTimeout(context.Background(), testutil.TestTimeout)
	defer cancel()
	for sink.ChunkCount() == 0 {
		if ctx.Err() != nil {
			t.Fatal("message never arrived")
		}
		rdb.Publish(ctx, "uwscompat:test:forward", "payload")
		time.Sleep(10 * time.Millisecond)
	}

	testutil.AssertNoError(t, src.Close())
	testutil.AssertEqual(t, sink.EndCount(), 1)
	testutil.AssertEqual(t, b.State(), bridge.Closed)
}

func TestCloseWithoutSubscribe(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer func() { _ = rdb.Close() }()

	src, err := redispush.New(redispush.Config{Redis: rdb, Channel: "unused"})
	testutil.AssertNoError(t, err)

	// Close before Subscribe releases nothing but must not panic or hang.
	testutil.AssertNoError(t, src.Close())
	testutil.AssertNoError(t, src.Close())
}
