// Package services contains domain services: business logic that spans more
// than one aggregate and does not belong to any of them.
//
// BestSellerRanker turns per-package purchase tallies into the storefront's
// best-seller list.
package services
