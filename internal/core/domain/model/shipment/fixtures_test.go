package shipment_test

import (
	"testing"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 5, 12, 6, 0, 0, 0, time.UTC)

func stopSpec(seq int, stopType shipment.StopType) shipment.StopSpec {
	arrival := baseTime.Add(time.Duration(seq) * 2 * time.Hour)
	return shipment.StopSpec{
		Sequence:         seq,
		Type:             stopType,
		LocationName:     "Warehouse " + string(rune('A'+seq-1)),
		Address:          "Industrial Zone, Gate 4",
		ContactPerson:    "Shift lead",
		PlannedArrival:   arrival,
		PlannedDeparture: arrival.Add(45 * time.Minute),
	}
}

func newShipment(t *testing.T, status shipment.Status) *shipment.Shipment {
	t.Helper()

	stops, err := shipment.NewStops([]shipment.StopSpec{
		stopSpec(1, shipment.Pickup),
		stopSpec(2, shipment.Dropoff),
	})
	require.NoError(t, err)

	planned, err := kernel.NewTimeWindow(baseTime, baseTime.Add(8*time.Hour))
	require.NoError(t, err)

	s, err := shipment.RestoreShipment(
		kernel.NewUUID(), "SHP000001", kernel.NewUUID(), shipment.Normal, status,
		planned, nil, nil, baseTime, stops,
	)
	require.NoError(t, err)
	return s
}

func completeAllStops(s *shipment.Shipment) []shipment.StopUpdate {
	updates := make([]shipment.StopUpdate, 0, len(s.Stops()))
	for _, stop := range s.Stops() {
		arrival := stop.Planned().Start()
		departure := stop.Planned().End()
		updates = append(updates, shipment.StopUpdate{
			StopID:          stop.ID(),
			ActualArrival:   &arrival,
			ActualDeparture: &departure,
		})
	}
	return updates
}
