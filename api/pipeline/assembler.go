package pipeline

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
)

// Days lists the day labels in week order, Monday first.
var Days = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var dayNumbers = map[string]int{
	"Mon": 1,
	"Tue": 2,
	"Wed": 3,
	"Thu": 4,
	"Fri": 5,
	"Sat": 6,
	"Sun": 7,
}

// Assemble converts raw values into a BookingRequest. Only the day label is
// checked here; categories are checked by the encoders during Transform.
func Assemble(raw RawBooking) (BookingRequest, error) {
	day, ok := dayNumbers[raw.FlightDay]
	if !ok {
		return BookingRequest{}, invalidInput(artifacts.FieldFlightDay, raw.FlightDay, errors.New("unknown day label"))
	}

	return BookingRequest{
		NumPassengers:      raw.NumPassengers,
		SalesChannel:       raw.SalesChannel,
		TripType:           raw.TripType,
		PurchaseLead:       raw.PurchaseLead,
		LengthOfStay:       raw.LengthOfStay,
		FlightHour:         raw.FlightHour,
		FlightDay:          day,
		Route:              raw.Route,
		BookingOrigin:      raw.BookingOrigin,
		WantsExtraBaggage:  boolToInt(raw.WantsExtraBaggage),
		WantsPreferredSeat: boolToInt(raw.WantsPreferredSeat),
		WantsInFlightMeals: boolToInt(raw.WantsInFlightMeals),
		FlightDuration:     raw.FlightDuration,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type intRange struct {
	field    string
	min, max int
	value    func(BookingRequest) int
}

var intRanges = []intRange{
	{artifacts.FieldNumPassengers, 1, 10, func(r BookingRequest) int { return r.NumPassengers }},
	{artifacts.FieldPurchaseLead, 0, 500, func(r BookingRequest) int { return r.PurchaseLead }},
	{artifacts.FieldLengthOfStay, 0, 365, func(r BookingRequest) int { return r.LengthOfStay }},
	{artifacts.FieldFlightHour, 0, 23, func(r BookingRequest) int { return r.FlightHour }},
}

const (
	minFlightDuration = 1.0
	maxFlightDuration = 24.0
)

// CheckRanges rejects numeric values outside the ranges the form allows.
func CheckRanges(req BookingRequest) error {
	for _, r := range intRanges {
		v := r.value(req)
		if v < r.min || v > r.max {
			return invalidInput(r.field, strconv.Itoa(v), errors.Errorf("must be between %d and %d", r.min, r.max))
		}
	}
	d := req.FlightDuration
	if math.IsNaN(d) || d < minFlightDuration || d > maxFlightDuration {
		return invalidInput(artifacts.FieldFlightDuration, strconv.FormatFloat(d, 'f', -1, 64),
			errors.Errorf("must be between %.1f and %.1f", minFlightDuration, maxFlightDuration))
	}
	return nil
}

// ParseForm reads a RawBooking from submitted form values. Missing checkboxes
// are false; a missing or malformed number is an invalid input. On error the
// booking still carries every field that parsed, with defaults elsewhere, so the
// form can be shown again as submitted.
func ParseForm(values url.Values) (RawBooking, error) {
	raw := DefaultBooking()
	raw.SalesChannel = values.Get(artifacts.FieldSalesChannel)
	raw.TripType = values.Get(artifacts.FieldTripType)
	raw.FlightDay = values.Get(artifacts.FieldFlightDay)
	raw.Route = values.Get(artifacts.FieldRoute)
	raw.BookingOrigin = values.Get(artifacts.FieldBookingOrigin)

	var first error
	fail := func(field, value string, err error) {
		if first == nil {
			first = invalidInput(field, value, err)
		}
	}

	ints := []struct {
		field string
		dst   *int
	}{
		{artifacts.FieldNumPassengers, &raw.NumPassengers},
		{artifacts.FieldPurchaseLead, &raw.PurchaseLead},
		{artifacts.FieldLengthOfStay, &raw.LengthOfStay},
		{artifacts.FieldFlightHour, &raw.FlightHour},
	}
	for _, f := range ints {
		s := strings.TrimSpace(values.Get(f.field))
		v, err := strconv.Atoi(s)
		if err != nil {
			fail(f.field, s, err)
			continue
		}
		*f.dst = v
	}

	s := strings.TrimSpace(values.Get(artifacts.FieldFlightDuration))
	if d, err := strconv.ParseFloat(s, 64); err != nil {
		fail(artifacts.FieldFlightDuration, s, err)
	} else {
		raw.FlightDuration = d
	}

	bools := []struct {
		field string
		dst   *bool
	}{
		{artifacts.FieldWantsExtraBaggage, &raw.WantsExtraBaggage},
		{artifacts.FieldWantsPreferredSeat, &raw.WantsPreferredSeat},
		{artifacts.FieldWantsInFlightMeals, &raw.WantsInFlightMeals},
	}
	for _, f := range bools {
		b, err := parseCheckbox(values.Get(f.field))
		if err != nil {
			fail(f.field, values.Get(f.field), err)
			continue
		}
		*f.dst = b
	}

	return raw, first
}

// browsers send "on" for a checked box with no value attribute
func parseCheckbox(s string) (bool, error) {
	switch s {
	case "":
		return false, nil
	case "on":
		return true, nil
	}
	return strconv.ParseBool(s)
}
