package pipeline

// RawBooking holds the values as the presentation layer collects them: category
// labels as strings, the day as a Mon..Sun label and the add-ons as checkboxes.
type RawBooking struct {
	NumPassengers      int     `json:"num_passengers"`
	SalesChannel       string  `json:"sales_channel"`
	TripType           string  `json:"trip_type"`
	PurchaseLead       int     `json:"purchase_lead"`
	LengthOfStay       int     `json:"length_of_stay"`
	FlightHour         int     `json:"flight_hour"`
	FlightDay          string  `json:"flight_day"`
	Route              string  `json:"route"`
	BookingOrigin      string  `json:"booking_origin"`
	WantsExtraBaggage  bool    `json:"wants_extra_baggage"`
	WantsPreferredSeat bool    `json:"wants_preferred_seat"`
	WantsInFlightMeals bool    `json:"wants_in_flight_meals"`
	FlightDuration     float64 `json:"flight_duration"`
}

// DefaultBooking is the form's initial state.
func DefaultBooking() RawBooking {
	return RawBooking{
		NumPassengers:  1,
		PurchaseLead:   30,
		LengthOfStay:   5,
		FlightHour:     12,
		FlightDay:      "Mon",
		FlightDuration: 5.0,
	}
}

// BookingRequest is a single record in training column order, before encoding.
type BookingRequest struct {
	NumPassengers      int
	SalesChannel       string
	TripType           string
	PurchaseLead       int
	LengthOfStay       int
	FlightHour         int
	FlightDay          int
	Route              string
	BookingOrigin      string
	WantsExtraBaggage  int
	WantsPreferredSeat int
	WantsInFlightMeals int
	FlightDuration     float64
}

// EncodedRecord is a BookingRequest with categories replaced by their codes and
// the scaled columns standardized.
type EncodedRecord struct {
	NumPassengers      int
	SalesChannel       int
	TripType           int
	PurchaseLead       float64
	LengthOfStay       float64
	FlightHour         int
	FlightDay          int
	Route              int
	BookingOrigin      int
	WantsExtraBaggage  int
	WantsPreferredSeat int
	WantsInFlightMeals int
	FlightDuration     float64
}

// Vector lays the record out in artifacts.Columns order.
func (r EncodedRecord) Vector() []float64 {
	return []float64{
		float64(r.NumPassengers),
		float64(r.SalesChannel),
		float64(r.TripType),
		r.PurchaseLead,
		r.LengthOfStay,
		float64(r.FlightHour),
		float64(r.FlightDay),
		float64(r.Route),
		float64(r.BookingOrigin),
		float64(r.WantsExtraBaggage),
		float64(r.WantsPreferredSeat),
		float64(r.WantsInFlightMeals),
		r.FlightDuration,
	}
}

// PredictionResult is the classifier's verdict. Probability is always the
// probability of the completed class, whichever class was predicted.
type PredictionResult struct {
	Completed   bool    `json:"completed"`
	Probability float64 `json:"probability"`
}

// Prediction is a PredictionResult tagged with an id for logging and responses.
type Prediction struct {
	ID string `json:"prediction_id"`
	PredictionResult
}
