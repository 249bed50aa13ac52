package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

type Repo struct{ DB *pgxpool.Pool }

// ListByBuyer: riwayat pesanan buyer, terbaru dulu, lengkap dgn item dan
// title/image produk utk tampilan. Produk yg sudah dihapus seller tetap
// muncul dgn title kosong.
func (r *Repo) ListByBuyer(ctx context.Context, buyerID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, buyer_id, status, total_amount, payment_method, created_at,
		       shipping_name, shipping_phone, shipping_email, shipping_address, shipping_notes
		FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	idx := map[string]int{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.Status, &o.TotalAmount, &o.PaymentMethod, &o.CreatedAt,
			&o.ShippingName, &o.ShippingPhone, &o.ShippingEmail, &o.ShippingAddress, &o.ShippingNotes); err != nil {
			return nil, err
		}
		idx[o.ID] = len(out)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	irows, err := r.DB.Query(ctx, `
		SELECT oi.order_id, oi.product_id, oi.quantity, oi.unit_price,
		       COALESCE(p.title,''), COALESCE(p.image_url,'')
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE o.buyer_id=$1`, buyerID)
	if err != nil {
		return nil, err
	}
	defer irows.Close()

	for irows.Next() {
		var it Item
		if err := irows.Scan(&it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.ProductTitle, &it.ProductImage); err != nil {
			return nil, err
		}
		if i, ok := idx[it.OrderID]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, irows.Err()
}

func (r *Repo) GetStatus(ctx context.Context, orderID string) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return Status(s), nil
}

// UpdateStatus: transisi dijaga state machine; UPDATE bersyarat status lama
// supaya dua transisi bersamaan tidak saling menimpa.
func (r *Repo) UpdateStatus(ctx context.Context, orderID string, to Status) (Status, error) {
	from, err := r.GetStatus(ctx, orderID)
	if err != nil {
		return "", err
	}
	if !to.Valid() || !CanTransition(from, to) {
		return from, ErrInvalidStatusTransition
	}
	ct, err := r.DB.Exec(ctx, `UPDATE orders SET status=$2, updated_at=now()
	                           WHERE id=$1 AND status=$3`, orderID, to, from)
	if err != nil {
		return from, err
	}
	if ct.RowsAffected() == 0 {
		// status keburu berubah oleh pihak lain
		return from, ErrInvalidStatusTransition
	}
	return from, nil
}
