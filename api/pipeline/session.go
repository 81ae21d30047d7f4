package pipeline

import (
	"sync"

	"github.com/pkg/errors"
)

// State is the position of a Session in its Idle -> Processing -> Resulted cycle.
type State int

const (
	// Idle means no booking has been submitted yet.
	Idle State = iota
	// Processing means a booking is being assembled, transformed and scored.
	Processing
	// Resulted means a prediction or an error is available.
	Resulted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Processing:
		return "processing"
	case Resulted:
		return "resulted"
	default:
		return "invalid"
	}
}

var (
	// ErrBusy is returned by Submit while a previous booking is still processing.
	ErrBusy = errors.New("a booking is already being processed")
	// ErrNoResult is returned by Result before anything has been submitted.
	ErrNoResult = errors.New("no booking has been submitted")
)

// Predictor scores raw bookings. *Runner implements it.
type Predictor interface {
	Predict(raw RawBooking) (Prediction, error)
}

// Session tracks the state of one user's predictions. It must not be shared
// between users; each user action replaces the previous result.
type Session struct {
	predictor Predictor
	mutex     sync.Mutex
	state     State
	result    Prediction
	err       error
}

// NewSession creates an idle session.
func NewSession(predictor Predictor) *Session {
	return &Session{predictor: predictor}
}

// current reports where the session is in its cycle.
func (s *Session) current() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Submit processes a booking to completion. Submitting from Resulted discards
// the previous result.
func (s *Session) Submit(raw RawBooking) (Prediction, error) {
	s.mutex.Lock()
	if s.state == Processing {
		s.mutex.Unlock()
		return Prediction{}, ErrBusy
	}
	s.state = Processing
	s.result = Prediction{}
	s.err = nil
	s.mutex.Unlock()

	result, err := s.predictor.Predict(raw)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state = Resulted
	s.result = result
	s.err = err
	return result, err
}

// Result returns the outcome of the last submission.
func (s *Session) Result() (Prediction, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	switch s.state {
	case Idle:
		return Prediction{}, ErrNoResult
	case Processing:
		return Prediction{}, ErrBusy
	}
	return s.result, s.err
}
