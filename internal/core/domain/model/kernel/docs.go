// Package kernel provides core domain primitives shared by the storefront's
// aggregates.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Price: A positive whole-rupiah amount with the receipt display format
//
// Both are immutable and validate on construction; their zero values are invalid.
package kernel
