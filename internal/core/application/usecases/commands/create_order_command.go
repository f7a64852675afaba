package commands

import (
	"errors"
	"strings"

	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/pkg/errs"
	"topup/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand is a buyer's request to purchase one catalog package.
// RequestedPrice is the price the client displayed; zero means it was not sent.
// The stored price always comes from the catalog.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, kernel.NewUUID(), "100 Gems", 15000)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor          identity.Identity
	orderID        kernel.UUID
	packageName    string
	requestedPrice int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Authentication is checked
// by the handler so that it can be reported as errs.ErrUnauthenticated.
func NewCreateOrderCommand(
	actor identity.Identity,
	orderID kernel.UUID,
	packageName string,
	requestedPrice int64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPackageName(packageName),
		cmd.setRequestedPrice(requestedPrice),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() identity.Identity {
	return c.actor
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) PackageName() string {
	return c.packageName
}

func (c CreateOrderCommand) RequestedPrice() int64 {
	return c.requestedPrice
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setPackageName(packageName string) error {
	packageName = strings.TrimSpace(packageName)
	if packageName == "" {
		return errs.NewValueIsRequiredError("package name")
	}

	c.packageName = packageName
	return nil
}

func (c *CreateOrderCommand) setRequestedPrice(price int64) error {
	if price < 0 {
		return errs.NewValueIsOutOfRangeError("requested price", price, 0, "unbounded")
	}

	c.requestedPrice = price
	return nil
}
