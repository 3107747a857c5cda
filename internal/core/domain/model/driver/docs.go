// Package driver contains the Driver aggregate: registration lifecycle
// (pending/approved/rejected/suspended), availability and position for the
// assignment engine, and cached rating/earnings aggregates.
package driver
