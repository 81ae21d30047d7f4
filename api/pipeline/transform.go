package pipeline

import (
	"math"

	"github.com/pkg/errors"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
)

// Artifacts is the part of the artifact bundle the transform needs.
type Artifacts interface {
	Encode(field string, value string) (int, error)
	Scale(values []float64) ([]float64, error)
}

// Transform encodes the categorical fields and then standardizes purchase_lead,
// length_of_stay and flight_duration. Every other field passes through.
func Transform(req BookingRequest, a Artifacts) (EncodedRecord, error) {
	rec := EncodedRecord{
		NumPassengers:      req.NumPassengers,
		FlightHour:         req.FlightHour,
		FlightDay:          req.FlightDay,
		WantsExtraBaggage:  req.WantsExtraBaggage,
		WantsPreferredSeat: req.WantsPreferredSeat,
		WantsInFlightMeals: req.WantsInFlightMeals,
	}

	categorical := []struct {
		field string
		value string
		dst   *int
	}{
		{artifacts.FieldSalesChannel, req.SalesChannel, &rec.SalesChannel},
		{artifacts.FieldTripType, req.TripType, &rec.TripType},
		{artifacts.FieldRoute, req.Route, &rec.Route},
		{artifacts.FieldBookingOrigin, req.BookingOrigin, &rec.BookingOrigin},
	}
	for _, c := range categorical {
		code, err := a.Encode(c.field, c.value)
		if err != nil {
			var unknown *artifacts.UnknownCategoryError
			if errors.As(err, &unknown) {
				return EncodedRecord{}, &Error{Kind: KindUnknownCategory, Field: c.field, Value: c.value, Err: err}
			}
			return EncodedRecord{}, artifactLoad(err)
		}
		*c.dst = code
	}

	// the scaler only ever sees float64 storage, in artifacts.ScaledFields order
	numeric := []float64{
		float64(req.PurchaseLead),
		float64(req.LengthOfStay),
		req.FlightDuration,
	}
	scaled, err := a.Scale(numeric)
	if err != nil {
		return EncodedRecord{}, artifactLoad(errors.Wrap(err, "failed to scale numeric fields"))
	}
	if len(scaled) != len(numeric) {
		return EncodedRecord{}, artifactLoad(errors.Errorf("scaler returned %d values for %d", len(scaled), len(numeric)))
	}
	for i, v := range scaled {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return EncodedRecord{}, artifactLoad(errors.Errorf("scaled %s is not finite", artifacts.ScaledFields[i]))
		}
	}
	rec.PurchaseLead = scaled[0]
	rec.LengthOfStay = scaled[1]
	rec.FlightDuration = scaled[2]

	return rec, nil
}
