// Package tracking contains the DeliveryTracking aggregate: the live view of
// one order's delivery. It records driver position reports, keeps the
// remaining distance to the destination current, and derives arrival
// estimates from an assumed average travel speed.
package tracking
