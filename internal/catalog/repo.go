package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, seller_id, title, description, category, image_url, price, stock, is_sold, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.SellerID, &p.Title, &p.Description, &p.Category, &p.ImageURL,
		&p.Price, &p.Stock, &p.IsSold, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

// ListAvailable: produk yg belum terjual, terbaru dulu.
func (r *Repo) ListAvailable(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products
	                              WHERE is_sold = FALSE ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *Repo) ListBySeller(ctx context.Context, sellerID string) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products
	                              WHERE seller_id=$1 ORDER BY created_at DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, p Product) (string, error) {
	id := uuid.NewString()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, seller_id, title, description, category, image_url, price, stock, is_sold)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,FALSE)`,
		id, p.SellerID, p.Title, p.Description, p.Category, p.ImageURL, p.Price, p.Stock)
	return id, err
}

// Update hanya utk pemilik produk; 0 row berarti bukan miliknya atau hilang.
func (r *Repo) Update(ctx context.Context, sellerID string, p Product) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products SET title=$3, description=$4, category=$5, image_url=$6, price=$7, stock=$8, updated_at=now()
		WHERE id=$1 AND seller_id=$2`,
		p.ID, sellerID, p.Title, p.Description, p.Category, p.ImageURL, p.Price, p.Stock)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, sellerID, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1 AND seller_id=$2`, id, sellerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) SetSold(ctx context.Context, sellerID, id string, sold bool) error {
	ct, err := r.DB.Exec(ctx, `UPDATE products SET is_sold=$3, updated_at=now()
	                           WHERE id=$1 AND seller_id=$2`, id, sellerID, sold)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
