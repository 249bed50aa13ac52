package cart

import (
	"errors"
	"time"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotFound        = errors.New("cart entry not found")
)

type Entry struct {
	BuyerID   string    `json:"buyer_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// Line adalah entry keranjang yg sudah di-join dgn data produk saat ini.
// Dipakai utk tampilan dan sebagai input checkout.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`

	// Hasil join; Exists=false kalau produknya sudah dihapus seller.
	Exists    bool   `json:"-"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	ImageURL  string `json:"image_url"`
	UnitPrice int64  `json:"unit_price"`
	Stock     int    `json:"stock"`
	IsSold    bool   `json:"is_sold"`
	SellerID  string `json:"seller_id"`
}

// Subtotal = jumlah qty*harga seluruh line, tanpa biaya layanan.
func Subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += int64(l.Quantity) * l.UnitPrice
	}
	return sum
}
