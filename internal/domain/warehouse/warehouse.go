package warehouse

import (
	"math"
	"strings"

	"github.com/nexbasket/backend/internal/domain/shared"
)

// Warehouse represents a fulfillment location aggregate root
type Warehouse struct {
	shared.BaseAggregateRoot
	Name      string  `gorm:"type:varchar(120);not null;uniqueIndex"`
	Address   string  `gorm:"type:text;not null"`
	City      string  `gorm:"type:varchar(80);not null;index"`
	Pincode   string  `gorm:"type:varchar(12);not null"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	Active    bool    `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new active warehouse
func NewWarehouse(name, address, city, pincode string, lat, lng float64) (*Warehouse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	if strings.TrimSpace(address) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Warehouse address cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return nil, shared.NewDomainError("INVALID_CITY", "Warehouse city cannot be empty")
	}
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	w := &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Address:           strings.TrimSpace(address),
		City:              strings.TrimSpace(city),
		Pincode:           strings.TrimSpace(pincode),
		Latitude:          lat,
		Longitude:         lng,
		Active:            true,
	}

	w.AddDomainEvent(NewWarehouseCreatedEvent(w))

	return w, nil
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return shared.NewDomainError("INVALID_COORDINATES", "Latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return shared.NewDomainError("INVALID_COORDINATES", "Longitude must be between -180 and 180")
	}
	return nil
}

// Update changes the warehouse details
func (w *Warehouse) Update(name, address, city, pincode string, lat, lng float64) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	if err := validateCoordinates(lat, lng); err != nil {
		return err
	}

	w.Name = strings.TrimSpace(name)
	w.Address = strings.TrimSpace(address)
	w.City = strings.TrimSpace(city)
	w.Pincode = strings.TrimSpace(pincode)
	w.Latitude = lat
	w.Longitude = lng

	return nil
}

// Activate marks the warehouse as accepting orders
func (w *Warehouse) Activate() {
	w.Active = true
}

// Deactivate stops the warehouse from accepting orders
func (w *Warehouse) Deactivate() {
	w.Active = false
}

// DistanceKm returns the great-circle distance from the warehouse to the
// given point using the haversine formula.
func (w *Warehouse) DistanceKm(lat, lng float64) float64 {
	const earthRadiusKm = 6371.0

	lat1 := lat * math.Pi / 180
	lat2 := w.Latitude * math.Pi / 180
	dLat := (w.Latitude - lat) * math.Pi / 180
	dLng := (w.Longitude - lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
