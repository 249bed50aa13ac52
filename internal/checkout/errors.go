package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized         = errors.New("buyer not authenticated")
	ErrIncompleteShipping   = errors.New("incomplete shipping info")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")

	// Kalah race stok saat commit; caller boleh re-fetch keranjang lalu
	// coba lagi. Engine tidak pernah retry sendiri.
	ErrStockConflict = errors.New("concurrent stock conflict")
)

// ProductUnavailableError: produk di keranjang sudah dihapus atau ditandai
// terjual oleh seller.
type ProductUnavailableError struct {
	ProductID string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s is no longer available", e.ProductID)
}

// InsufficientStockError: qty diminta melebihi stok saat validasi.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (available %d)", e.ProductID, e.Available)
}
