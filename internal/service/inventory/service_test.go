package inventory

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Additional-Code/stockledger/internal/cache"
	"github.com/Additional-Code/stockledger/internal/config"
	"github.com/Additional-Code/stockledger/internal/entity"
	"github.com/Additional-Code/stockledger/internal/messaging"
	"github.com/Additional-Code/stockledger/internal/repository/memory"
	"github.com/Additional-Code/stockledger/internal/service/catalog"
	"github.com/Additional-Code/stockledger/pkg/errorbank"
)

type published struct {
	key   string
	value []byte
}

type recordingClient struct {
	mu       sync.Mutex
	messages []published
}

func (r *recordingClient) Publish(_ context.Context, key, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, published{key: string(key), value: value})
	return nil
}

func (r *recordingClient) Consume(ctx context.Context, _ messaging.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (r *recordingClient) Topic() string { return "inventory.events" }

type keyCache struct {
	deleted []string
}

func (k *keyCache) Get(context.Context, string) ([]byte, error) { return nil, cache.ErrCacheMiss }
func (k *keyCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
func (k *keyCache) Delete(_ context.Context, key string) error {
	k.deleted = append(k.deleted, key)
	return nil
}

func newService(t *testing.T, store *memory.Store, client messaging.Client, c cache.Store) *Service {
	t.Helper()
	var cfg config.Config
	cfg.Messaging.Enabled = true
	cfg.Messaging.Kafka.Topic = "inventory.events"
	return NewService(Params{
		Repository: store,
		Catalog:    catalog.NewService(catalog.Params{Repository: store, Cache: c, Config: cfg, Logger: zap.NewNop()}),
		Config:     cfg,
		Logger:     zap.NewNop(),
		Publisher:  client,
	})
}

func seedProduct(t *testing.T, store *memory.Store, min, current int) entity.Product {
	t.Helper()
	one := decimal.NewFromInt(1)
	p, err := store.CreateProduct(context.Background(), entity.ProductInput{
		Name: "Lamp", SKU: "LMP", PurchasePrice: &one, SellingPrice: &one,
		MinStockLevel: &min, CurrentStock: &current,
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRecordTransactionPublishesStockAfter(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	client := &recordingClient{}
	c := &keyCache{}
	svc := newService(t, store, client, c)
	p := seedProduct(t, store, 10, 10)

	cases := []struct {
		in       entity.TransactionInput
		stock    int
		lowStock bool
	}{
		{entity.TransactionInput{ProductID: p.ID, Type: entity.TransactionOut, Quantity: 15}, 0, true},
		{entity.TransactionInput{ProductID: p.ID, Type: entity.TransactionAdjustment, Quantity: 50}, 50, false},
	}
	for i, tc := range cases {
		txn, err := svc.RecordTransaction(ctx, tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if len(client.messages) != i+1 {
			t.Fatalf("published %d messages, want %d", len(client.messages), i+1)
		}
		msg := client.messages[i]
		if msg.key != "product-1" {
			t.Fatalf("key = %q", msg.key)
		}
		var event TransactionRecordedEvent
		if err := json.Unmarshal(msg.value, &event); err != nil {
			t.Fatal(err)
		}
		if event.EventID == "" || event.ID != txn.ID || event.StockAfter != tc.stock || event.LowStock != tc.lowStock {
			t.Fatalf("event = %+v", event)
		}
	}

	if len(c.deleted) != 2 || c.deleted[0] != catalog.CacheKey(p.ID) {
		t.Fatalf("cache deletes = %v", c.deleted)
	}
}

func TestRecordTransactionOrphan(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	client := &recordingClient{}
	svc := newService(t, store, client, nil)

	txn, err := svc.RecordTransaction(ctx, entity.TransactionInput{ProductID: 42, Type: entity.TransactionIn, Quantity: 1})
	if err != nil {
		t.Fatal(err)
	}
	if txn.ID != 1 {
		t.Fatalf("id = %d", txn.ID)
	}
	if len(client.messages) != 0 {
		t.Fatal("orphan transactions are not published")
	}
	all, _ := svc.ListTransactions(ctx)
	if len(all) != 1 {
		t.Fatalf("transactions = %d", len(all))
	}
}

func TestRecordTransactionInvalid(t *testing.T) {
	svc := newService(t, memory.New(), &recordingClient{}, nil)

	_, err := svc.RecordTransaction(context.Background(), entity.TransactionInput{ProductID: 1, Type: "move"})
	if !errorbank.Is(err, errorbank.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	store := memory.New(memory.WithClock(func() time.Time { return now }), memory.WithLocation(time.UTC))
	svc := newService(t, store, &recordingClient{}, nil)
	seedProduct(t, store, 3, 1)

	amount := decimal.RequireFromString("45.50")
	if _, err := store.CreateSalesOrder(ctx, entity.SalesOrderInput{OrderNumber: "S-1", Status: entity.StatusCompleted, TotalAmount: &amount}); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.DashboardStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalProducts != 1 || stats.LowStockItems != 1 || !stats.TodaySales.Equal(amount) || stats.ExpiringSoon != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}
