package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
)

func testPaths() artifacts.Paths {
	dir := filepath.Join("..", "artifacts", "testdata")
	return artifacts.Paths{
		Model:    filepath.Join(dir, "airline_model.json"),
		Scaler:   filepath.Join(dir, "scaler.json"),
		Encoders: filepath.Join(dir, "encoders.json"),
	}
}

func loadBundle(t *testing.T) *artifacts.Bundle {
	bundle, err := artifacts.Load(testPaths())
	require.NoError(t, err)
	return bundle
}

// validBooking is the reference booking: one passenger, internet round trip,
// 30 day lead, 5 day stay, noon on Monday, no add-ons, 5 hour flight.
func validBooking() RawBooking {
	return RawBooking{
		NumPassengers:  1,
		SalesChannel:   "Internet",
		TripType:       "RoundTrip",
		PurchaseLead:   30,
		LengthOfStay:   5,
		FlightHour:     12,
		FlightDay:      "Mon",
		Route:          "AKLDEL",
		BookingOrigin:  "Australia",
		FlightDuration: 5.0,
	}
}
