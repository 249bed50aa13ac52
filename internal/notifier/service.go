package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/logging"
	"github.com/ariefcatur/go-marketplace.git/internal/orders"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
)

// Service meneruskan event order.placed jadi feed notifikasi per seller:
// tiap seller yg produknya kebeli dapat satu entry di feed redis-nya.
type Service struct {
	Redis *redis.Client
	Log   *slog.Logger
}

func New(rdb *redis.Client) *Service {
	return &Service{Redis: rdb, Log: logging.New("notifier")}
}

type feedEntry struct {
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	Title     string    `json:"title"`
	Qty       int       `json:"qty"`
	UnitPrice int64     `json:"unit_price"`
	PlacedAt  time.Time `json:"placed_at"`
}

// HandleOrderPlaced: dipasang sebagai handler consumer.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	} // ignore

	// dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	for _, it := range p.Items {
		if it.SellerID == "" {
			continue
		}
		entry := kafkax.MustMarshal(feedEntry{
			OrderID:   p.OrderID,
			ProductID: it.ProductID,
			Title:     it.Title,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			PlacedAt:  env.OccurredAt,
		})
		key := fmt.Sprintf(redisx.KeySellerFeed, it.SellerID)
		pipe := s.Redis.Pipeline()
		pipe.LPush(ctx, key, entry)
		pipe.LTrim(ctx, key, 0, 99) // simpan 100 notifikasi terakhir
		pipe.Expire(ctx, key, redisx.TTLSellerFeed)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}

	s.Log.Info("order notified",
		"order_id", p.OrderID, "buyer_id", p.BuyerID, "items", len(p.Items))
	return nil
}
