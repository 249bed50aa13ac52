package checkout

import "testing"

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentBCA, PaymentMandiri, PaymentCOD, PaymentQRIS, PaymentDANA} {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	for _, m := range []PaymentMethod{"", "gopay", "BCA", "visa"} {
		if m.Valid() {
			t.Errorf("%q should not be valid", m)
		}
	}
}

func TestShippingComplete(t *testing.T) {
	full := Shipping{FullName: "Budi", Phone: "0812", Email: "b@x.id", Address: "Jl. Merdeka 1"}
	if !full.complete() {
		t.Error("complete shipping rejected")
	}

	cases := map[string]Shipping{
		"no name":    {Phone: "0812", Email: "b@x.id", Address: "Jl. Merdeka 1"},
		"no phone":   {FullName: "Budi", Email: "b@x.id", Address: "Jl. Merdeka 1"},
		"no email":   {FullName: "Budi", Phone: "0812", Address: "Jl. Merdeka 1"},
		"no address": {FullName: "Budi", Phone: "0812", Email: "b@x.id"},
		"whitespace": {FullName: "  ", Phone: "0812", Email: "b@x.id", Address: "Jl. Merdeka 1"},
	}
	for name, s := range cases {
		if s.complete() {
			t.Errorf("%s: incomplete shipping accepted", name)
		}
	}
}
