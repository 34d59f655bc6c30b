package postgres

import (
	"context"
	"fmt"

	"freightops/internal/adapters/out/postgres/dispatchrepo"
	"freightops/internal/adapters/out/postgres/driverrepo"
	"freightops/internal/adapters/out/postgres/eventrepo"
	"freightops/internal/adapters/out/postgres/orderrepo"
	"freightops/internal/adapters/out/postgres/shipmentrepo"
	"freightops/internal/adapters/out/postgres/vehiclerepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in creation order.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&vehiclerepo.VehicleDTO{},
		&driverrepo.DriverDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.StopDTO{},
		&dispatchrepo.DispatchDTO{},
		&eventrepo.StatusEventDTO{},
	}
}

// Migrate creates or updates the schema and the shipment number sequence.
// It is idempotent.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s START 1", shipmentrepo.NumberSequence)).Error; err != nil {
		return fmt.Errorf("create %s: %w", shipmentrepo.NumberSequence, err)
	}

	return nil
}
