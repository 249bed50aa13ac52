package orders

import "time"

type Order struct {
	ID            string    `json:"id"`
	BuyerID       string    `json:"buyer_id"`
	Status        Status    `json:"status"`
	TotalAmount   int64     `json:"total_amount"` // line items + biaya layanan
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`

	// Snapshot alamat pengiriman saat checkout.
	ShippingName    string `json:"shipping_name"`
	ShippingPhone   string `json:"shipping_phone"`
	ShippingEmail   string `json:"shipping_email"`
	ShippingAddress string `json:"shipping_address"`
	ShippingNotes   string `json:"shipping_notes,omitempty"`

	Items []Item `json:"items"`
}

// Item immutable setelah commit; UnitPrice adalah harga saat pembelian,
// tidak ikut berubah kalau seller mengedit harga produk.
type Item struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`

	// Denormalisasi utk tampilan riwayat pesanan.
	ProductTitle string `json:"product_title,omitempty"`
	ProductImage string `json:"product_image,omitempty"`

	// Diisi saat placement dari snapshot keranjang (utk event notifikasi
	// seller); reader tidak mengisinya lagi.
	SellerID string `json:"seller_id,omitempty"`
}
