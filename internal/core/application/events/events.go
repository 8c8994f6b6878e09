package events

import (
	"time"

	"foodcourt/internal/core/domain/model/order"
)

// Event names carried on the wire. Viewers subscribe by name.
const (
	OrderNewName     = "order:new"
	DriverLocName    = "driver:loc"
	OrderChangedName = "order:changed"
)

// Event is a realtime notification emitted after a successful state change.
// Each variant carries an explicit, versionable payload schema rather than a
// loose map, so the wire format is fixed by the type.
type Event interface {
	// EventName returns the wire name viewers dispatch on.
	EventName() string

	// EventKey returns the partitioning/correlation key, the order id.
	EventKey() string

	// EventPayload returns the JSON-serializable payload.
	EventPayload() any
}

// Publisher fans an event out to connected viewers. Implementations must not
// block the caller; delivery is best-effort and at-most-once.
type Publisher interface {
	Publish(event Event)
}

// GeoPointPayload is the wire form of a coordinate pair.
type GeoPointPayload struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// LineItemPayload is the wire form of an order line item.
type LineItemPayload struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// DriverLocationPayload is the wire form of a driver position observation.
// The coordinates sit flat next to the timestamp, not behind a nested point
// object.
type DriverLocationPayload struct {
	Lng        float64   `json:"lng"`
	Lat        float64   `json:"lat"`
	ObservedAt time.Time `json:"observedAt"`
}

// RatingPayload is the wire form of a customer rating.
type RatingPayload struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

// OrderPayload is the wire form of a full order. It is shared between the
// realtime relay and the HTTP responses so both surfaces stay in sync.
type OrderPayload struct {
	ID             string                 `json:"id"`
	RestaurantID   string                 `json:"restaurantId"`
	CustomerID     *string                `json:"customerId,omitempty"`
	CustomerName   string                 `json:"customerName,omitempty"`
	CustomerEmail  string                 `json:"customerEmail,omitempty"`
	LineItems      []LineItemPayload      `json:"lineItems"`
	Total          float64                `json:"total"`
	Status         string                 `json:"status"`
	DriverName     *string                `json:"driverName,omitempty"`
	DriverUserID   *string                `json:"driverUserId,omitempty"`
	DriverLocation *DriverLocationPayload `json:"driverLocation,omitempty"`
	Destination    *GeoPointPayload       `json:"destination,omitempty"`
	DestinationLbl string                 `json:"destinationLabel,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	ClosedAt       *time.Time             `json:"closedAt,omitempty"`
	ArchivedAt     *time.Time             `json:"archivedAt,omitempty"`
	Rating         *RatingPayload         `json:"rating,omitempty"`
	RatedAt        *time.Time             `json:"ratedAt,omitempty"`
	Version        int64                  `json:"version"`
}

// OrderPayloadFromDomain maps an order aggregate to its wire form.
func OrderPayloadFromDomain(o *order.Order) OrderPayload {
	p := OrderPayload{
		ID:            o.ID().String(),
		RestaurantID:  o.RestaurantID().String(),
		CustomerName:  o.CustomerName(),
		CustomerEmail: o.CustomerEmail(),
		Total:         o.Total(),
		Status:        o.Status().String(),
		DriverName:    o.DriverName(),
		CreatedAt:     o.CreatedAt(),
		ClosedAt:      o.ClosedAt(),
		ArchivedAt:    o.ArchivedAt(),
		RatedAt:       o.RatedAt(),
		Version:       o.Version(),
	}

	for _, item := range o.LineItems() {
		p.LineItems = append(p.LineItems, LineItemPayload{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	if customerID := o.CustomerID(); customerID != nil {
		id := customerID.String()
		p.CustomerID = &id
	}
	if driverID := o.DriverUserID(); driverID != nil {
		id := driverID.String()
		p.DriverUserID = &id
	}
	if loc := o.DriverLocation(); loc != nil {
		p.DriverLocation = &DriverLocationPayload{
			Lng:        loc.Point().Lng(),
			Lat:        loc.Point().Lat(),
			ObservedAt: loc.ObservedAt(),
		}
	}
	if dest := o.Destination(); dest != nil {
		p.Destination = &GeoPointPayload{Lng: dest.Point().Lng(), Lat: dest.Point().Lat()}
		p.DestinationLbl = dest.Label()
	}
	if rating := o.Rating(); rating != nil {
		p.Rating = &RatingPayload{Score: rating.Score(), Comment: rating.Comment()}
	}

	return p
}

// OrderNew announces a freshly created order to restaurant dashboards.
type OrderNew struct {
	Order OrderPayload
}

// NewOrderNew builds the creation event for an order aggregate.
func NewOrderNew(o *order.Order) OrderNew {
	return OrderNew{Order: OrderPayloadFromDomain(o)}
}

// EventName implements Event.
func (OrderNew) EventName() string { return OrderNewName }

// EventKey implements Event.
func (e OrderNew) EventKey() string { return e.Order.ID }

// EventPayload implements Event.
func (e OrderNew) EventPayload() any { return e.Order }

// DriverLocPayload is the wire payload of a driver position update, scoped to
// its order.
type DriverLocPayload struct {
	OrderID  string                `json:"orderId"`
	Location DriverLocationPayload `json:"location"`
}

// DriverLoc announces a driver position update to tracking viewers.
type DriverLoc struct {
	Payload DriverLocPayload
}

// NewDriverLoc builds the location event from an order carrying a fresh
// driver observation.
func NewDriverLoc(o *order.Order) DriverLoc {
	p := DriverLocPayload{OrderID: o.ID().String()}
	if loc := o.DriverLocation(); loc != nil {
		p.Location = DriverLocationPayload{
			Lng:        loc.Point().Lng(),
			Lat:        loc.Point().Lat(),
			ObservedAt: loc.ObservedAt(),
		}
	}
	return DriverLoc{Payload: p}
}

// EventName implements Event.
func (DriverLoc) EventName() string { return DriverLocName }

// EventKey implements Event.
func (e DriverLoc) EventKey() string { return e.Payload.OrderID }

// EventPayload implements Event.
func (e DriverLoc) EventPayload() any { return e.Payload }

// OrderChangedPayload is the wire payload of a lifecycle transition.
type OrderChangedPayload struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// OrderChanged announces a lifecycle transition. It also feeds the optional
// Kafka topic for downstream consumers.
type OrderChanged struct {
	Payload OrderChangedPayload
}

// NewOrderChanged builds the lifecycle event for an order aggregate.
func NewOrderChanged(o *order.Order) OrderChanged {
	return OrderChanged{Payload: OrderChangedPayload{
		OrderID: o.ID().String(),
		Status:  o.Status().String(),
	}}
}

// EventName implements Event.
func (OrderChanged) EventName() string { return OrderChangedName }

// EventKey implements Event.
func (e OrderChanged) EventKey() string { return e.Payload.OrderID }

// EventPayload implements Event.
func (e OrderChanged) EventPayload() any { return e.Payload }
