package checkout_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ariefcatur/go-marketplace.git/internal/cart"
	"github.com/ariefcatur/go-marketplace.git/internal/checkout"
	"github.com/ariefcatur/go-marketplace.git/internal/orders"
)

// fakeWorld: CartStore + OrderStore in-memory dgn semantik commit yg sama
// spt store pgx: all-or-nothing, stok dikurangi bersyarat, keranjang
// dikosongkan hanya kalau commit sukses.
type fakeWorld struct {
	mu    sync.Mutex
	carts map[string][]cart.Line
	stock map[string]int
	sold  map[string]bool

	committed []*orders.Order
	items     map[string][]orders.Item
}

func newWorld() *fakeWorld {
	return &fakeWorld{
		carts: map[string][]cart.Line{},
		stock: map[string]int{},
		sold:  map[string]bool{},
		items: map[string][]orders.Item{},
	}
}

func (w *fakeWorld) Snapshot(_ context.Context, buyerID string) ([]cart.Line, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	lines := make([]cart.Line, len(w.carts[buyerID]))
	copy(lines, w.carts[buyerID])
	return lines, nil
}

func (w *fakeWorld) Commit(_ context.Context, o *orders.Order, items []orders.Item) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, it := range items {
		if w.sold[it.ProductID] || w.stock[it.ProductID] < it.Quantity {
			return checkout.ErrStockConflict
		}
	}
	for _, it := range items {
		w.stock[it.ProductID] -= it.Quantity
		if w.stock[it.ProductID] == 0 {
			w.sold[it.ProductID] = true
		}
	}
	w.committed = append(w.committed, o)
	w.items[o.ID] = items
	delete(w.carts, o.BuyerID)
	return nil
}

func (w *fakeWorld) addProduct(id string, price int64, stock int) {
	w.stock[id] = stock
	w.sold[id] = false
}

func (w *fakeWorld) addToCart(buyerID, productID string, qty int, price int64) {
	w.carts[buyerID] = append(w.carts[buyerID], cart.Line{
		ProductID: productID,
		Quantity:  qty,
		Exists:    true,
		Title:     "Produk " + productID,
		UnitPrice: price,
		Stock:     w.stock[productID],
		IsSold:    w.sold[productID],
		SellerID:  "seller-1",
	})
}

var validShipping = checkout.Shipping{
	FullName: "Budi Santoso",
	Phone:    "0812-3456-7890",
	Email:    "budi@example.com",
	Address:  "Jl. Merdeka No. 1, Jakarta",
}

func TestPlaceOrderSuccess(t *testing.T) {
	w := newWorld()
	w.addProduct("prod-a", 50000, 5)
	w.addToCart("buyer-1", "prod-a", 2, 50000)

	eng := checkout.NewEngine(w, w, 1000)
	o, err := eng.PlaceOrder(context.Background(), "buyer-1", validShipping, checkout.PaymentQRIS)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if o.TotalAmount != 101000 {
		t.Errorf("total = %d, want 101000", o.TotalAmount)
	}
	if o.Status != orders.StatusPending {
		t.Errorf("status = %s, want pending", o.Status)
	}
	if len(o.Items) != 1 || o.Items[0].Quantity != 2 || o.Items[0].UnitPrice != 50000 {
		t.Errorf("items = %+v", o.Items)
	}
	if got := w.stock["prod-a"]; got != 3 {
		t.Errorf("stock after = %d, want 3", got)
	}
	if w.sold["prod-a"] {
		t.Error("is_sold should stay false while stock remains")
	}
	if lines, _ := w.Snapshot(context.Background(), "buyer-1"); len(lines) != 0 {
		t.Errorf("cart should be empty after checkout, got %d lines", len(lines))
	}
	if o.PaymentMethod != "qris" {
		t.Errorf("payment method = %s", o.PaymentMethod)
	}
}

func TestPlaceOrderTotalInvariant(t *testing.T) {
	w := newWorld()
	w.addProduct("prod-a", 75000, 10)
	w.addProduct("prod-b", 10000, 10)
	w.addToCart("buyer-1", "prod-a", 1, 75000)
	w.addToCart("buyer-1", "prod-b", 3, 10000)

	eng := checkout.NewEngine(w, w, 1000)
	o, err := eng.PlaceOrder(context.Background(), "buyer-1", validShipping, checkout.PaymentCOD)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	var sum int64
	for _, it := range o.Items {
		sum += int64(it.Quantity) * it.UnitPrice
	}
	if o.TotalAmount != sum+eng.ServiceFee() {
		t.Errorf("total %d != item sum %d + fee %d", o.TotalAmount, sum, eng.ServiceFee())
	}
}

func TestPlaceOrderMarksSoldOut(t *testing.T) {
	w := newWorld()
	w.addProduct("prod-a", 20000, 2)
	w.addToCart("buyer-1", "prod-a", 2, 20000)

	eng := checkout.NewEngine(w, w, 1000)
	if _, err := eng.PlaceOrder(context.Background(), "buyer-1", validShipping, checkout.PaymentBCA); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if w.stock["prod-a"] != 0 || !w.sold["prod-a"] {
		t.Errorf("stock=%d sold=%v, want 0/true", w.stock["prod-a"], w.sold["prod-a"])
	}
}

func TestPlaceOrderUnauthorized(t *testing.T) {
	w := newWorld()
	eng := checkout.NewEngine(w, w, 1000)
	if _, err := eng.PlaceOrder(context.Background(), "", validShipping, checkout.PaymentBCA); !errors.Is(err, checkout.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestPlaceOrderIncompleteShipping(t *testing.T) {
	w := newWorld()
	w.addProduct("prod-a", 50000, 5)
	w.addToCart("buyer-1", "prod-a", 1, 50000)
	eng := checkout.NewEngine(w, w, 1000)

	ship := validShipping
	ship.Address = "" // alamat kosong
	_, err := eng.PlaceOrder(context.Background(), "buyer-1", ship, checkout.PaymentBCA)
	if !errors.Is(err, checkout.ErrIncompleteShipping) {
		t.Fatalf("err = %v, want ErrIncompleteShipping", err)
	}
	if len(w.committed) != 0 {
		t.Error("no order may be created on shipping validation failure")
	}
	if lines, _ := w.Snapshot(context.Background(), "buyer-1"); len(lines) != 1 {
		t.Error("cart must be untouched")
	}
}

func TestPlaceOrderEmptyCartIdempotentFailure(t *testing.T) {
	w := newWorld()
	eng := checkout.NewEngine(w, w, 1000)

	for i := 0; i < 2; i++ {
		_, err := eng.PlaceOrder(context.Background(), "buyer-1", validShipping, checkout.PaymentDANA)
		if !errors.Is(err, checkout.ErrEmptyCart) {
			t.Fatalf("attempt %d: err = %v, want ErrEmptyCart", i+1, err)
		}
	}
	if len(w.committed) != 0 {
		t.Error("no state change expected")
	}
}

func TestPlaceOrderUnknownPaymentMethod(t *testing.T) {
	w := newWorld()
	w.addProduct("prod-a", 50000, 5)
	w.addToCart("buyer-1", "prod-a", 1, 50000)
	eng := checkout.NewEngine(w, w, 1000)

	_, err := eng.PlaceOrder(context.Background(), "buyer-1", validShipping, checkout.PaymentMethod("gopay"))
	if !errors.Is(err, checkout.ErrUnknownPaymentMethod) {
		t.Errorf("err = %v, want ErrUnknownPaymentMethod", err)
	}
}

func TestPlaceOrderProductUnavailable(t *testing.T) {
	w := newWorld()
	eng := checkout.NewEngine(w, w, 1000)

	// produk sudah dihapus seller: join tidak nemu row
	w.carts["buyer-1"] = []cart.Line{{ProductID: "gone", Quantity: 1, Exists: false}}
	_, err := eng.PlaceOrder(context.Background(), "buyer-1", validShipping, checkout.PaymentBCA)
	var unavailable *checkout.ProductUnavailableError
	if !errors.As(err, &unavailable) || unavailable.ProductID != "gone" {
		t.Fatalf("err = %v, want ProductUnavailableError{gone}", err)
	}

	// produk ditandai terjual
	w.carts["buyer-2"] = []cart.Line{{ProductID: "sold-out", Quantity: 1, Exists: true, IsSold: true, Stock: 3}}
	_, err = eng.PlaceOrder(context.Background(), "buyer-2", validShipping, checkout.PaymentBCA)
	if !errors.As(err, &unavailable) || unavailable.ProductID != "sold-out" {
		t.Fatalf("err = %v, want ProductUnavailableError{sold-out}", err)
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	w := newWorld()
	w.addProduct("prod-a", 50000, 1)
	w.addToCart("buyer-1", "prod-a", 2, 50000)
	eng := checkout.NewEngine(w, w, 1000)

	_, err := eng.PlaceOrder(context.Background(), "buyer-1", validShipping, checkout.PaymentBCA)
	var shortage *checkout.InsufficientStockError
	if !errors.As(err, &shortage) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if shortage.ProductID != "prod-a" || shortage.Available != 1 {
		t.Errorf("detail = %+v", shortage)
	}
	if w.stock["prod-a"] != 1 {
		t.Error("stock must be untouched")
	}
	if lines, _ := w.Snapshot(context.Background(), "buyer-1"); len(lines) != 1 {
		t.Error("cart must be untouched")
	}
}

// Dua buyer rebutan sisa stok yg sama: tepat satu yg sukses, yg kalah
// dapat ErrStockConflict, stok tidak pernah negatif.
func TestPlaceOrderConcurrentStockConflict(t *testing.T) {
	w := newWorld()
	w.addProduct("prod-a", 50000, 3)
	w.addToCart("buyer-1", "prod-a", 3, 50000)
	w.addToCart("buyer-2", "prod-a", 3, 50000)
	eng := checkout.NewEngine(w, w, 1000)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, buyer := range []string{"buyer-1", "buyer-2"} {
		wg.Add(1)
		go func(i int, buyer string) {
			defer wg.Done()
			_, errs[i] = eng.PlaceOrder(context.Background(), buyer, validShipping, checkout.PaymentQRIS)
		}(i, buyer)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, checkout.ErrStockConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Errorf("wins=%d conflicts=%d, want 1/1", wins, conflicts)
	}
	if w.stock["prod-a"] != 0 {
		t.Errorf("final stock = %d, want 0", w.stock["prod-a"])
	}
	if len(w.committed) != 1 {
		t.Errorf("committed orders = %d, want 1", len(w.committed))
	}
}

// Harga diambil dari snapshot yg divalidasi: edit harga produk setelah
// snapshot tidak menggeser unit_price yg tercatat.
func TestPlaceOrderCapturesSnapshotPrice(t *testing.T) {
	w := newWorld()
	w.addProduct("prod-a", 50000, 5)
	w.addToCart("buyer-1", "prod-a", 1, 50000)

	eng := checkout.NewEngine(w, w, 1000)
	o, err := eng.PlaceOrder(context.Background(), "buyer-1", validShipping, checkout.PaymentMandiri)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if o.Items[0].UnitPrice != 50000 {
		t.Errorf("unit price = %d, want harga snapshot 50000", o.Items[0].UnitPrice)
	}
}
