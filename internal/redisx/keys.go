package redisx

import "time"

const (
	// Idempotency checkout: idem:checkout:{buyer_id}:{key} -> order_id
	KeyIdemCheckout = "idem:checkout:%s:%s"

	// Cache status order: order_status:{order_id} -> {"status": "..."}
	KeyOrderStatus = "order_status:%s"

	// Cache jumlah item keranjang utk badge navbar: cart_count:{buyer_id}
	KeyCartCount = "cart_count:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Feed notifikasi penjual: list seller_feed:{seller_id}
	KeySellerFeed = "seller_feed:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLCartCount   = 10 * time.Minute
	TTLDedup       = 48 * time.Hour
	TTLSellerFeed  = 7 * 24 * time.Hour
)
