package backend

// NoInvoiceOpenError reports an invoice operation while no invoice is open.
// Create or open an invoice first.
type NoInvoiceOpenError struct{}

func (e *NoInvoiceOpenError) Error() string {
	return "no invoice open, create or open one first"
}
