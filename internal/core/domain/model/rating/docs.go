// Package rating contains the DriverRating aggregate: a customer's one-time
// review of a delivered order, with an overall score, optional sub-scores,
// and an optional tip.
package rating
