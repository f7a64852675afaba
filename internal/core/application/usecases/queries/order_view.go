// Package queries contains read operations. Order listings read the ledger
// with plain SQL through GORM; receipt and best-seller queries combine the
// ledger with other collaborators.
package queries

import (
	"database/sql"
	"time"

	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderView is the read model of one order.
type OrderView struct {
	ID          kernel.UUID
	BuyerID     kernel.UUID
	BuyerName   string
	PackageName string
	UnitPrice   kernel.Price
	CreatedAt   time.Time
	Status      order.Status
	// ProofRef is empty until a proof is uploaded.
	ProofRef string
}

const orderViewColumns = `
	id,
	buyer_id,
	buyer_name,
	package_name,
	unit_price,
	created_at,
	status,
	proof_ref`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderView(row rowScanner) (OrderView, error) {
	var (
		view        OrderView
		id, buyerID uuid.UUID
		unitPrice   int64
		status      string
		proofRef    sql.NullString
	)

	if err := row.Scan(
		&id,
		&buyerID,
		&view.BuyerName,
		&view.PackageName,
		&unitPrice,
		&view.CreatedAt,
		&status,
		&proofRef,
	); err != nil {
		return OrderView{}, err
	}

	var err error
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return OrderView{}, err
	}
	if view.UnitPrice, err = kernel.NewPrice(unitPrice); err != nil {
		return OrderView{}, err
	}
	if view.Status, err = order.ParseStatus(status); err != nil {
		return OrderView{}, err
	}
	view.CreatedAt = view.CreatedAt.UTC()
	view.ProofRef = proofRef.String

	return view, nil
}

type rowsIterator interface {
	rowScanner
	Next() bool
	Err() error
	Close() error
}

func scanOrderViews(rows rowsIterator) ([]OrderView, error) {
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
