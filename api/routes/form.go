package routes

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/pipeline"
	"gitlab.uncharted.software/WM/wm-booking-predictor/config"
	"go.uber.org/zap"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

var fieldLabels = map[string]string{
	artifacts.FieldSalesChannel:  "Sales channel",
	artifacts.FieldTripType:      "Trip type",
	artifacts.FieldFlightDay:     "Flight day",
	artifacts.FieldRoute:         "Route",
	artifacts.FieldBookingOrigin: "Booking origin",
}

type option struct {
	Value    string
	Selected bool
}

type selectInput struct {
	Name    string
	Label   string
	Options []option
}

type banner struct {
	Completed bool
	Text      string
}

type formView struct {
	Booking pipeline.RawBooking
	Selects []selectInput
	Result  *banner
	Error   string
}

func newSelect(field string, values []string, selected string) selectInput {
	options := make([]option, len(values))
	for i, v := range values {
		options[i] = option{Value: v, Selected: v == selected}
	}
	return selectInput{Name: field, Label: fieldLabels[field], Options: options}
}

func buildSelects(bundle *artifacts.Bundle, booking pipeline.RawBooking) ([]selectInput, error) {
	selected := map[string]string{
		artifacts.FieldSalesChannel:  booking.SalesChannel,
		artifacts.FieldTripType:      booking.TripType,
		artifacts.FieldRoute:         booking.Route,
		artifacts.FieldBookingOrigin: booking.BookingOrigin,
	}
	var selects []selectInput
	for _, field := range bundle.Fields() {
		values, err := bundle.EncoderCategories(field)
		if err != nil {
			return nil, err
		}
		selects = append(selects, newSelect(field, values, selected[field]))
	}
	return append(selects, newSelect(artifacts.FieldFlightDay, pipeline.Days, booking.FlightDay)), nil
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 2, 64) + "%"
}

func resultBanner(result pipeline.PredictionResult) *banner {
	if result.Completed {
		return &banner{Completed: true, Text: fmt.Sprintf("Booking completed (probability %s)", formatPercent(result.Probability))}
	}
	return &banner{Completed: false, Text: fmt.Sprintf("Booking not completed (booking probability %s)", formatPercent(result.Probability))}
}

func renderForm(w http.ResponseWriter, status int, view formView, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := formTemplate.Execute(w, view); err != nil {
		logger.Errorf("%+v", errors.Wrap(err, "failed to render form"))
	}
}

// errorView renders just the message when the artifacts are unavailable, since
// the selects cannot be populated.
func errorView(err error) formView {
	var pErr *pipeline.Error
	if errors.As(err, &pErr) {
		return formView{Error: pErr.Message()}
	}
	return formView{Error: "An error occurred while processing the booking."}
}

// FormPage renders the booking form with its default values.
func FormPage(cfg *config.Config, predictor Predictor) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := predictor.Bundle()
		if err != nil {
			renderForm(w, statusFor(pipeline.KindOf(err)), errorView(err), cfg.Logger)
			return
		}

		booking := pipeline.DefaultBooking()
		selects, err := buildSelects(bundle, booking)
		if err != nil {
			handleErrorType(w, err, http.StatusInternalServerError, cfg.Logger)
			return
		}
		renderForm(w, http.StatusOK, formView{Booking: booking, Selects: selects}, cfg.Logger)
	}
}

// FormSubmit scores the submitted form and renders the result above the form,
// keeping the user's values so they can correct and resubmit.
func FormSubmit(cfg *config.Config, predictor Predictor) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := predictor.Bundle()
		if err != nil {
			renderForm(w, statusFor(pipeline.KindOf(err)), errorView(err), cfg.Logger)
			return
		}

		if err := r.ParseForm(); err != nil {
			handleErrorType(w, errors.Wrap(err, "failed to parse form"), http.StatusBadRequest, cfg.Logger)
			return
		}

		status := http.StatusOK

		raw, err := pipeline.ParseForm(r.PostForm)
		view := formView{Booking: raw}
		if err == nil {
			session := pipeline.NewSession(predictor)
			session.Submit(raw)
			var prediction pipeline.Prediction
			if prediction, err = session.Result(); err == nil {
				view.Result = resultBanner(prediction.PredictionResult)
			}
		}
		if err != nil {
			status = statusFor(pipeline.KindOf(err))
			view.Error = errorView(err).Error
		}

		if view.Selects, err = buildSelects(bundle, view.Booking); err != nil {
			handleErrorType(w, err, http.StatusInternalServerError, cfg.Logger)
			return
		}
		renderForm(w, status, view, cfg.Logger)
	}
}
