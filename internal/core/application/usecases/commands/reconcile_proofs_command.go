package commands

import (
	"errors"
	"time"

	"topup/internal/pkg/errs"
	"topup/internal/pkg/guard"
)

var (
	ErrReconcileProofsCommandIsNotConstructed = errors.New(
		"ReconcileProofsCommand must be created via NewReconcileProofsCommand constructor",
	)
)

// DefaultOrphanGrace is how old an unreferenced blob must be before the sweep removes it.
const DefaultOrphanGrace = time.Hour

// ReconcileProofsCommand runs one pass of the proof storage sweep.
type ReconcileProofsCommand struct {
	orphanGrace time.Duration

	guard guard.ConstructorGuard
}

// NewReconcileProofsCommand rejects a negative grace period. Zero removes
// every unreferenced blob regardless of age.
func NewReconcileProofsCommand(orphanGrace time.Duration) (ReconcileProofsCommand, error) {
	if orphanGrace < 0 {
		return ReconcileProofsCommand{}, errs.NewValueIsOutOfRangeError("orphan grace", orphanGrace, 0, "unbounded")
	}
	return ReconcileProofsCommand{
		orphanGrace: orphanGrace,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileProofsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileProofsCommandIsNotConstructed)
}

func (c ReconcileProofsCommand) OrphanGrace() time.Duration {
	return c.orphanGrace
}
