// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the marketplace. It
// implements business workflows that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - DriverDispatcher: selects the driver for an order by proximity to the
//     restaurant, within the search radius and each driver's own
//     delivery-distance preference
//   - AccessPolicy: concentrates every who-may-do-what rule in one place so
//     handlers never hand-roll ownership checks
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
