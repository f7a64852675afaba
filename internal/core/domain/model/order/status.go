package order

import (
	"fmt"

	"topup/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> AwaitingReview ──> Confirmed
//	                │    ▲
//	                └────┘
//	       (proof re-upload allowed)
//
// Confirmed is terminal. Any other transition is rejected with errs.ErrConflict.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order exists and no proof has been uploaded.
	Pending

	// AwaitingReview means a proof of payment is attached and an admin has to check it.
	AwaitingReview

	// Confirmed means an admin accepted the payment. No further transitions are allowed.
	Confirmed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		AwaitingReview: "awaiting_review",
		Confirmed:      "confirmed",
	}
}

// ParseStatus converts the persisted representation back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate returns an error for Unknown and out-of-range values.
func (s Status) Validate() error {
	if s != Pending && s != AwaitingReview && s != Confirmed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == Confirmed
}

// SubmitProof transitions the status to AwaitingReview.
//
// Valid transitions:
//   - Pending -> AwaitingReview (first upload)
//   - AwaitingReview -> AwaitingReview (re-upload replaces the proof)
func (s Status) SubmitProof() (Status, error) {
	if s != Pending && s != AwaitingReview {
		return Unknown, errs.NewConflictErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to submit a proof", s),
		)
	}
	return AwaitingReview, nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - AwaitingReview -> Confirmed
//
// Pending orders have no proof to review, and confirmed orders are final.
func (s Status) Confirm() (Status, error) {
	if s != AwaitingReview {
		return Unknown, errs.NewConflictErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to confirm", s),
		)
	}
	return Confirmed, nil
}

// ValidateCanHaveProof checks the consistency between status and proof presence.
//
// Business Rules:
//   - Pending orders must not have a proof
//   - AwaitingReview and Confirmed orders must have a proof
func (s Status) ValidateCanHaveProof(hasProof bool) error {
	if hasProof && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a proof", s),
		)
	}
	if !hasProof && (s == AwaitingReview || s == Confirmed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no proof", s),
		)
	}
	return nil
}
