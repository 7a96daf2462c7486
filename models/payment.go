package models

// ChargeRequest asks a payment backend to take Amount (major units) in Currency.
// Reference identifies the charge for idempotency, typically the booking ID.
type ChargeRequest struct {
	Amount    float64
	Currency  string
	Reference string
	Metadata  map[string]string
}

// ChargeResult is the uniform outcome of a charge across payment backends.
type ChargeResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Error         string `json:"error,omitempty"`
}
