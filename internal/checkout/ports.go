package checkout

import (
	"context"

	"github.com/ariefcatur/go-marketplace.git/internal/cart"
	"github.com/ariefcatur/go-marketplace.git/internal/orders"
)

// Kontrak storage yg dikonsumsi engine (bentuknya di adapter, bukan di
// domain). Implementasi pgx ada di store.go; test pakai fake in-memory.

type CartStore interface {
	// Snapshot isi keranjang buyer, sudah join data produk saat ini.
	Snapshot(ctx context.Context, buyerID string) ([]cart.Line, error)
}

// OrderStore meng-commit satu checkout sebagai unit atomik: insert order +
// seluruh item, kurangi stok tiap produk secara bersyarat, dan kosongkan
// keranjang buyer. Kalau ada stok yg keburu habis, seluruh efek dibatalkan
// dan balikannya ErrStockConflict.
type OrderStore interface {
	Commit(ctx context.Context, o *orders.Order, items []orders.Item) error
}
