// Package restaurant provides the Restaurant aggregate: a storefront with a
// pickup origin, a two-part delivery fee schedule and derived order/rating
// counters maintained transactionally by the application layer.
package restaurant
