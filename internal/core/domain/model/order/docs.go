// Package order provides the Order aggregate of the top-up storefront and the
// status state machine that governs a purchase.
//
// The package includes:
//   - Order: The aggregate root holding the buyer and catalog snapshot, the proof
//     of payment reference and the lifecycle status
//   - Status: A state machine that enforces valid status transitions
//   - ProofFilename: A sanitized, allow-listed name for an uploaded proof image
//
// Key business rules:
//   - Orders must have a valid identifier, a buyer, a package name and a positive price
//   - Package name and unit price are frozen at creation
//   - Status follows Pending -> AwaitingReview -> Confirmed and never moves backward
//   - A proof may be re-uploaded while the order awaits review; the last one wins
//   - Confirmed is terminal
//   - Buyers may delete their own orders until they are confirmed; admins may delete any order
package order
