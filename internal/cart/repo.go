package cart

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// Add: upsert, qty digabung kalau pasangan (buyer, product) sudah ada.
func (r *Repo) Add(ctx context.Context, buyerID, productID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO cart_items(user_id, product_id, quantity)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()`,
		buyerID, productID, qty)
	return err
}

func (r *Repo) SetQuantity(ctx context.Context, buyerID, productID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE cart_items SET quantity=$3, updated_at=now()
		WHERE user_id=$1 AND product_id=$2`, buyerID, productID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Remove(ctx context.Context, buyerID, productID string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`, buyerID, productID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Clear(ctx context.Context, buyerID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, buyerID)
	return err
}

func (r *Repo) Count(ctx context.Context, buyerID string) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE user_id=$1`, buyerID).Scan(&n)
	return n, err
}

// Snapshot: seluruh isi keranjang buyer, join dgn produk saat ini, urut
// sesuai waktu masuk keranjang. LEFT JOIN supaya entry yg produknya sudah
// dihapus tetap kelihatan (Exists=false) dan bisa ditolak saat checkout.
func (r *Repo) Snapshot(ctx context.Context, buyerID string) ([]Line, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ci.product_id, ci.quantity,
		       p.id IS NOT NULL,
		       COALESCE(p.title,''), COALESCE(p.category,''), COALESCE(p.image_url,''),
		       COALESCE(p.price,0), COALESCE(p.stock,0), COALESCE(p.is_sold,FALSE),
		       COALESCE(p.seller_id,'')
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id=$1
		ORDER BY ci.created_at`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.Exists,
			&l.Title, &l.Category, &l.ImageURL,
			&l.UnitPrice, &l.Stock, &l.IsSold, &l.SellerID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
