package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// AnonymousBuyerName is stored when the buyer has no display name.
const AnonymousBuyerName = "Anonymous"

// Order is a single purchase of a catalog package. It is the aggregate root that
// manages the purchase lifecycle from creation through proof submission to
// admin confirmation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a buyer
//   - Package name and unit price are a snapshot taken at creation and never change
//   - Creation time is set once
//   - Status transitions follow the Status state machine
//   - A proof reference is present exactly when the status is past Pending
type Order struct {
	id kernel.UUID

	buyerID   kernel.UUID
	buyerName string

	packageName string
	unitPrice   kernel.Price

	createdAt time.Time

	status Status
	proof  ProofFilename

	isConstructed bool
}

// NewOrder creates a Pending order for the given buyer and catalog snapshot.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), buyer.UserID, buyer.DisplayName,
//	    entry.Name(), entry.Price(), clock.Now())
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	buyerName string,
	packageName string,
	unitPrice kernel.Price,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyer(buyerID, buyerName),
		o.setPackage(packageName, unitPrice),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence, validating the stored state.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	buyerName string,
	packageName string,
	unitPrice kernel.Price,
	createdAt time.Time,
	status Status,
	proof ProofFilename,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setBuyer(buyerID, buyerName),
		o.setPackage(packageName, unitPrice),
		o.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveProof(!proof.IsZero()); err != nil {
		return nil, err
	}

	o.status = status
	o.proof = proof
	return o, nil
}

// Validate ensures the Order instance was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// BuyerName is the display name the buyer had when ordering.
func (o *Order) BuyerName() string {
	return o.buyerName
}

func (o *Order) PackageName() string {
	return o.packageName
}

func (o *Order) UnitPrice() kernel.Price {
	return o.unitPrice
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Status() Status {
	return o.status
}

// Proof returns the stored proof reference; the zero value means none was uploaded.
func (o *Order) Proof() ProofFilename {
	return o.proof
}

// AttachProof records the proof of payment and moves the order to AwaitingReview.
// A second upload while awaiting review replaces the first; no history is kept.
// Confirmed orders reject the upload with errs.ErrConflict.
func (o *Order) AttachProof(proof ProofFilename) error {
	if proof.IsZero() {
		return errs.NewValueIsRequiredError("proof")
	}

	newStatus, err := o.status.SubmitProof()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.proof = proof
	return nil
}

// Confirm marks the payment as accepted. Only orders awaiting review can be confirmed.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// CanBeViewedBy reports whether the actor may read this order: its buyer or any admin.
func (o *Order) CanBeViewedBy(actor identity.Identity) error {
	if err := identity.RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.IsAdmin() || actor.Owns(o.buyerID) {
		return nil
	}
	return fmt.Errorf("%w: order belongs to another buyer", errs.ErrForbidden)
}

// CanBeDeletedBy reports whether the actor may delete this order. Admins may
// delete any order; buyers only their own, and only before confirmation.
func (o *Order) CanBeDeletedBy(actor identity.Identity) error {
	if err := o.CanBeViewedBy(actor); err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: confirmed orders can only be removed by an admin", errs.ErrForbidden)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyer(buyerID kernel.UUID, buyerName string) error {
	if buyerID.IsZero() {
		return errs.NewValueIsRequiredError("buyer")
	}
	buyerName = strings.TrimSpace(buyerName)
	if buyerName == "" {
		buyerName = AnonymousBuyerName
	}
	o.buyerID = buyerID
	o.buyerName = buyerName
	return nil
}

func (o *Order) setPackage(packageName string, unitPrice kernel.Price) error {
	packageName = strings.TrimSpace(packageName)
	var nameErr error
	if packageName == "" {
		nameErr = errs.NewValueIsRequiredError("package name")
	}
	if err := errors.Join(nameErr, unitPrice.Validate()); err != nil {
		return err
	}
	o.packageName = packageName
	o.unitPrice = unitPrice
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt.UTC()
	return nil
}
