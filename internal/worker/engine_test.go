package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/messaging"
)

type scriptedClient struct {
	messages []messaging.Message
}

func (s *scriptedClient) Publish(context.Context, []byte, []byte) error { return nil }

func (s *scriptedClient) Consume(ctx context.Context, handler messaging.Handler) error {
	for _, m := range s.messages {
		if err := handler(ctx, m); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *scriptedClient) Topic() string { return "inventory.events" }

func enabledConfig() config.Config {
	var cfg config.Config
	cfg.Messaging.Enabled = true
	cfg.Messaging.Workers.Enabled = true
	cfg.Messaging.Workers.Concurrency = 1
	return cfg
}

func TestEngineDispatchesByTopic(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
		done = make(chan struct{})
	)
	handler := func(_ context.Context, msg messaging.Message) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, string(msg.Key))
		if len(seen) == 2 {
			close(done)
		}
		return nil
	}

	client := &scriptedClient{messages: []messaging.Message{
		{Topic: "inventory.events", Key: []byte("product-1")},
		{Topic: "unknown", Key: []byte("skipped")},
		{Topic: "inventory.events", Key: []byte("product-2")},
	}}
	engine := NewEngine(Params{
		Client: client,
		Logger: zap.NewNop(),
		Config: enabledConfig(),
		Registrations: []HandlerRegistration{
			{Topic: "inventory.events", Handler: handler},
			{Topic: "", Handler: handler},
		},
	})

	if err := engine.start(context.Background()); err != nil {
		t.Fatal(err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("messages were not dispatched")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := engine.stop(ctx); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != "product-1" || seen[1] != "product-2" {
		t.Fatalf("seen = %v", seen)
	}
}

func TestEngineDisabled(t *testing.T) {
	engine := NewEngine(Params{
		Client: &scriptedClient{},
		Logger: zap.NewNop(),
		Config: config.Config{},
	})
	if err := engine.start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if engine.cancel != nil {
		t.Fatal("disabled engine should not start workers")
	}
	if err := engine.stop(context.Background()); err != nil {
		t.Fatal(err)
	}
}
