package checkout

type PaymentMethod string

// Pilihan pembayaran yg tampil di halaman checkout. Tidak ada settlement
// di sini; metode hanya dicatat sebagai metadata order.
const (
	PaymentBCA     PaymentMethod = "bca"     // BCA Virtual Account
	PaymentMandiri PaymentMethod = "mandiri" // Mandiri Virtual Account
	PaymentCOD     PaymentMethod = "cod"     // bayar di tempat
	PaymentQRIS    PaymentMethod = "qris"
	PaymentDANA    PaymentMethod = "dana"
)

var paymentMethods = map[PaymentMethod]bool{
	PaymentBCA:     true,
	PaymentMandiri: true,
	PaymentCOD:     true,
	PaymentQRIS:    true,
	PaymentDANA:    true,
}

func (m PaymentMethod) Valid() bool { return paymentMethods[m] }
