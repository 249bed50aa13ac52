package wishlist

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-marketplace.git/internal/catalog"
)

type Repo struct{ DB *pgxpool.Pool }

// Add idempotent: nambah produk yg sudah ada di wishlist bukan error.
func (r *Repo) Add(ctx context.Context, buyerID, productID string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO wishlist(user_id, product_id) VALUES ($1,$2)
		ON CONFLICT (user_id, product_id) DO NOTHING`, buyerID, productID)
	return err
}

func (r *Repo) Remove(ctx context.Context, buyerID, productID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM wishlist WHERE user_id=$1 AND product_id=$2`, buyerID, productID)
	return err
}

func (r *Repo) Has(ctx context.Context, buyerID, productID string) (bool, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM wishlist
	                           WHERE user_id=$1 AND product_id=$2`, buyerID, productID).Scan(&n)
	return n > 0, err
}

// List: produk di wishlist buyer, terbaru dulu. Entry yg produknya sudah
// dihapus seller ikut hilang dari daftar.
func (r *Repo) List(ctx context.Context, buyerID string) ([]catalog.Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.seller_id, p.title, p.description, p.category, p.image_url,
		       p.price, p.stock, p.is_sold, p.created_at, p.updated_at
		FROM wishlist w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id=$1
		ORDER BY w.created_at DESC`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Title, &p.Description, &p.Category, &p.ImageURL,
			&p.Price, &p.Stock, &p.IsSold, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
