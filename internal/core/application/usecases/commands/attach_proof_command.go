package commands

import (
	"errors"
	"fmt"

	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/domain/model/order"
	"topup/internal/pkg/errs"
	"topup/internal/pkg/guard"
)

var (
	ErrAttachProofCommandIsNotConstructed = errors.New(
		"AttachProofCommand must be created via NewAttachProofCommand constructor",
	)
)

// AttachProofCommand carries an uploaded proof of payment for one order.
// The filename is sanitized and checked against the image allow-list here, and
// the image header against order.MaxProofPixels, so a rejected upload never reaches storage.
type AttachProofCommand struct { //nolint:recvcheck //using for validation
	actor   identity.Identity
	orderID kernel.UUID
	proof   order.ProofFilename
	data    []byte

	guard guard.ConstructorGuard
}

func NewAttachProofCommand(
	actor identity.Identity,
	orderID kernel.UUID,
	filename string,
	data []byte,
) (AttachProofCommand, error) {
	cmd := AttachProofCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProof(filename, data),
	); err != nil {
		return AttachProofCommand{}, err
	}

	return cmd, nil
}

func (c AttachProofCommand) Validate() error {
	return c.guard.Validate(ErrAttachProofCommandIsNotConstructed)
}

func (c AttachProofCommand) Actor() identity.Identity {
	return c.actor
}

func (c AttachProofCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Proof returns the sanitized filename the blob is stored under.
func (c AttachProofCommand) Proof() order.ProofFilename {
	return c.proof
}

func (c AttachProofCommand) Data() []byte {
	return c.data
}

func (c *AttachProofCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AttachProofCommand) setProof(filename string, data []byte) error {
	proof, err := order.NewProofFilename(filename)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errs.NewInvalidMediaErrorWithCause(filename, fmt.Errorf("file is empty"))
	}
	if err = order.CheckProofDimensions(filename, data); err != nil {
		return err
	}

	c.proof = proof
	c.data = data
	return nil
}
