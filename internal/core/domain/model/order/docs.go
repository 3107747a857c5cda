// Package order provides domain entities and business logic for order
// management in the marketplace. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that owns item lines, monetary totals, the
//     delivery destination, and the assigned driver
//   - Item: An order line holding a name and unit-price snapshot taken from
//     the menu at placement time
//   - Status: A state machine enforcing the workflow
//     pending -> confirmed -> preparing -> ready -> picked_up -> delivered,
//     with cancellation allowed from pending and confirmed only
//
// Key business rules:
//   - Totals are computed once at placement: subtotal from the item lines,
//     tax as 10% of the subtotal, total as subtotal + delivery fee + tax
//   - A driver attaches at most once, and only to a confirmed, preparing,
//     or ready order
//   - Delivered and cancelled orders never change again
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
