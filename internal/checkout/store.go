package checkout

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-marketplace.git/internal/orders"
)

// Store: implementasi OrderStore di atas Postgres. Seluruh efek checkout
// hidup dalam satu transaksi.
type Store struct{ DB *pgxpool.Pool }

func (s *Store) Commit(ctx context.Context, o *orders.Order, items []orders.Item) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Kurangi stok per produk dgn UPDATE bersyarat. Syarat stock >= qty
	// dievaluasi atomik di row produk, jadi dua checkout yg rebutan stok
	// terakhir tidak mungkin dua-duanya lolos: yg kalah dapat 0 row dan
	// seluruh transaksi di-rollback.
	for _, it := range items {
		ct, err := tx.Exec(ctx, `
			UPDATE products
			SET stock = stock - $2, is_sold = ((stock - $2) = 0), updated_at = now()
			WHERE id = $1 AND is_sold = FALSE AND stock >= $2`,
			it.ProductID, it.Quantity)
		if err != nil {
			return fmt.Errorf("decrement stock %s: %w", it.ProductID, err)
		}
		if ct.RowsAffected() != 1 {
			return ErrStockConflict
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders(id, buyer_id, status, total_amount, payment_method,
		                   shipping_name, shipping_phone, shipping_email, shipping_address, shipping_notes,
		                   created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		o.ID, o.BuyerID, o.Status, o.TotalAmount, o.PaymentMethod,
		o.ShippingName, o.ShippingPhone, o.ShippingEmail, o.ShippingAddress, o.ShippingNotes,
		o.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, quantity, unit_price)
			VALUES ($1,$2,$3,$4)`,
			it.OrderID, it.ProductID, it.Quantity, it.UnitPrice); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	// Keranjang dikosongkan di transaksi yg sama; checkout gagal berarti
	// keranjang utuh.
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, o.BuyerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return tx.Commit(ctx)
}
