// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are stored as a jsonb document since they are immutable snapshots
// that are never queried individually; every other attribute is a flat column
// so status, ownership and archival scans stay index-friendly.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RestaurantID  uuid.UUID  `gorm:"type:uuid;index"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string
	CustomerEmail string

	LineItems LineItemsJSON `gorm:"type:jsonb"`
	Total     float64

	Status int `gorm:"index"`

	DriverName          *string
	DriverUserID        *uuid.UUID `gorm:"type:uuid;index"`
	DriverLocLng        *float64
	DriverLocLat        *float64
	DriverLocObservedAt *time.Time

	DestLng   *float64
	DestLat   *float64
	DestLabel *string

	CreatedAt  time.Time
	ClosedAt   *time.Time `gorm:"index"`
	ArchivedAt *time.Time `gorm:"index"`

	RatingScore   *int
	RatingComment *string
	RatedAt       *time.Time

	// Version backs optimistic concurrency control; Update only succeeds
	// when the stored value still matches the loaded aggregate's version.
	Version int64
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemJSON is the jsonb element form of a single line item.
type LineItemJSON struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// LineItemsJSON stores the order's line items as a single jsonb column.
type LineItemsJSON []LineItemJSON

// Value implements driver.Valuer for jsonb serialization.
func (l LineItemsJSON) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for jsonb deserialization.
func (l *LineItemsJSON) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into LineItemsJSON", value)
	}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		RestaurantID:  aggregate.RestaurantID().Bytes(),
		CustomerName:  aggregate.CustomerName(),
		CustomerEmail: aggregate.CustomerEmail(),
		Total:         aggregate.Total(),
		Status:        int(aggregate.Status()),
		DriverName:    aggregate.DriverName(),
		CreatedAt:     aggregate.CreatedAt(),
		ClosedAt:      aggregate.ClosedAt(),
		ArchivedAt:    aggregate.ArchivedAt(),
		RatedAt:       aggregate.RatedAt(),
		Version:       aggregate.Version(),
	}

	for _, item := range aggregate.LineItems() {
		dto.LineItems = append(dto.LineItems, LineItemJSON{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	if id := aggregate.CustomerID(); id != nil {
		raw := id.Bytes()
		dto.CustomerID = &raw
	}
	if id := aggregate.DriverUserID(); id != nil {
		raw := id.Bytes()
		dto.DriverUserID = &raw
	}
	if loc := aggregate.DriverLocation(); loc != nil {
		lng, lat := loc.Point().Lng(), loc.Point().Lat()
		observedAt := loc.ObservedAt()
		dto.DriverLocLng = &lng
		dto.DriverLocLat = &lat
		dto.DriverLocObservedAt = &observedAt
	}
	if dest := aggregate.Destination(); dest != nil {
		lng, lat := dest.Point().Lng(), dest.Point().Lat()
		label := dest.Label()
		dto.DestLng = &lng
		dto.DestLat = &lat
		dto.DestLabel = &label
	}
	if rating := aggregate.Rating(); rating != nil {
		score := rating.Score()
		comment := rating.Comment()
		dto.RatingScore = &score
		dto.RatingComment = &comment
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	params := order.RestoreOrderParams{
		ID:            id,
		RestaurantID:  restaurantID,
		CustomerName:  dto.CustomerName,
		CustomerEmail: dto.CustomerEmail,
		Total:         dto.Total,
		Status:        order.Status(dto.Status),
		DriverName:    dto.DriverName,
		CreatedAt:     dto.CreatedAt,
		ClosedAt:      dto.ClosedAt,
		ArchivedAt:    dto.ArchivedAt,
		RatedAt:       dto.RatedAt,
		Version:       dto.Version,
	}

	for _, item := range dto.LineItems {
		lineItem, itemErr := order.NewLineItem(item.Name, item.Quantity, item.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		params.LineItems = append(params.LineItems, lineItem)
	}

	if dto.CustomerID != nil {
		customerID, idErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if idErr != nil {
			return nil, idErr
		}
		params.CustomerID = &customerID
	}
	if dto.DriverUserID != nil {
		driverID, idErr := kernel.UUIDFromBytes((*dto.DriverUserID)[:])
		if idErr != nil {
			return nil, idErr
		}
		params.DriverUserID = &driverID
	}
	if dto.DriverLocLng != nil && dto.DriverLocLat != nil && dto.DriverLocObservedAt != nil {
		point, locErr := kernel.NewGeoPoint(*dto.DriverLocLng, *dto.DriverLocLat)
		if locErr != nil {
			return nil, locErr
		}
		loc, locErr := order.NewDriverLocation(point, *dto.DriverLocObservedAt)
		if locErr != nil {
			return nil, locErr
		}
		params.DriverLocation = &loc
	}
	if dto.DestLng != nil && dto.DestLat != nil {
		point, destErr := kernel.NewGeoPoint(*dto.DestLng, *dto.DestLat)
		if destErr != nil {
			return nil, destErr
		}
		label := ""
		if dto.DestLabel != nil {
			label = *dto.DestLabel
		}
		dest, destErr := order.NewDestination(point, label)
		if destErr != nil {
			return nil, destErr
		}
		params.Destination = &dest
	}
	if dto.RatingScore != nil {
		comment := ""
		if dto.RatingComment != nil {
			comment = *dto.RatingComment
		}
		rating, ratingErr := order.NewRating(*dto.RatingScore, comment)
		if ratingErr != nil {
			return nil, ratingErr
		}
		params.Rating = &rating
	}

	return order.RestoreOrder(params)
}
