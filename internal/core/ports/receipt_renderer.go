package ports

import "time"

// Receipt carries everything printed on a transaction receipt.
type Receipt struct {
	OrderID     string
	BuyerName   string
	PackageName string
	TotalPrice  string
	PurchasedAt time.Time
	Status      string

	// HasProof is set when the order references a proof. ProofImage is nil
	// when that blob could not be read, and a placeholder is drawn instead.
	HasProof   bool
	ProofImage []byte
}

// ReceiptRenderer lays a Receipt out as a PDF document.
type ReceiptRenderer interface {
	Render(receipt Receipt) ([]byte, error)
}
