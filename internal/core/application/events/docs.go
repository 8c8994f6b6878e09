// Package events defines the realtime notifications emitted after successful
// state changes, each with an explicit wire schema, and the Publisher port
// used to fan them out. Delivery is best-effort, at-most-once, and strictly
// after commit.
package events
