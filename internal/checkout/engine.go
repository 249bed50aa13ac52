package checkout

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ariefcatur/go-marketplace.git/internal/cart"
	"github.com/ariefcatur/go-marketplace.git/internal/logging"
	"github.com/ariefcatur/go-marketplace.git/internal/orders"
)

// Shipping diisi buyer di form checkout; tidak disimpan di luar order yg
// dihasilkannya.
type Shipping struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Notes    string `json:"notes,omitempty"`
}

func (s Shipping) complete() bool {
	return strings.TrimSpace(s.FullName) != "" &&
		strings.TrimSpace(s.Phone) != "" &&
		strings.TrimSpace(s.Email) != "" &&
		strings.TrimSpace(s.Address) != ""
}

type Engine struct {
	carts CartStore
	store OrderStore
	fee   int64 // biaya layanan flat, Rupiah
	log   *slog.Logger
}

func NewEngine(carts CartStore, store OrderStore, serviceFee int64) *Engine {
	return &Engine{carts: carts, store: store, fee: serviceFee, log: logging.New("checkout")}
}

func (e *Engine) ServiceFee() int64 { return e.fee }

// PlaceOrder mengubah keranjang buyer jadi order pending, satu unit atomik:
// order + item + pengurangan stok + pengosongan keranjang. Gagal di tahap
// mana pun tidak meninggalkan efek apa-apa.
//
// Urutan pengecekan fixed: auth, kelengkapan shipping, keranjang kosong,
// baru validasi per item. Harga item diambil dari snapshot yg divalidasi,
// bukan dibaca ulang saat commit.
func (e *Engine) PlaceOrder(ctx context.Context, buyerID string, ship Shipping, method PaymentMethod) (*orders.Order, error) {
	if buyerID == "" {
		return nil, ErrUnauthorized
	}
	if !ship.complete() {
		return nil, ErrIncompleteShipping
	}
	if !method.Valid() {
		return nil, ErrUnknownPaymentMethod
	}

	lines, err := e.carts.Snapshot(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	for _, l := range lines {
		if !l.Exists || l.IsSold {
			return nil, &ProductUnavailableError{ProductID: l.ProductID}
		}
		if l.Quantity > l.Stock {
			return nil, &InsufficientStockError{ProductID: l.ProductID, Available: l.Stock}
		}
	}

	o := &orders.Order{
		ID:              uuid.NewString(),
		BuyerID:         buyerID,
		Status:          orders.StatusPending,
		TotalAmount:     cart.Subtotal(lines) + e.fee,
		PaymentMethod:   string(method),
		CreatedAt:       time.Now().UTC(),
		ShippingName:    ship.FullName,
		ShippingPhone:   ship.Phone,
		ShippingEmail:   ship.Email,
		ShippingAddress: ship.Address,
		ShippingNotes:   ship.Notes,
	}
	items := make([]orders.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, orders.Item{
			OrderID:      o.ID,
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			ProductTitle: l.Title,
			ProductImage: l.ImageURL,
			SellerID:     l.SellerID,
		})
	}

	if err := e.store.Commit(ctx, o, items); err != nil {
		return nil, err
	}
	o.Items = items

	e.log.Info("order placed",
		"order_id", o.ID, "buyer_id", buyerID,
		"items", len(items), "total", o.TotalAmount, "payment", method)
	return o, nil
}
