package cart

import "time"

// ReceiptGenerator renderiza el comprobante PDF de una compra finalizada.
type ReceiptGenerator interface {
	GenerateReceipt(res CheckoutResult, date time.Time) ([]byte, error)
}
