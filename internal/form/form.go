package form

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gitlab.com/epixlabs/contact-relay/pkg/model"
)

// SentDisplayInterval is how long the success indicator stays up before the form is idle again.
const SentDisplayInterval = 3500 * time.Millisecond

// Messages shown to the user.
const (
	NameRequired      = "Please enter your name"
	EmailRequired     = "Please enter your email"
	MessageRequired   = "Please enter a short message describing your project"
	SendFailedAlert   = "Failed to send. Please try again."
	NetworkErrorAlert = "Network error. Please try again."
)

var (
	// ErrInFlight is returned while a previous submission has not finished yet.
	ErrInFlight = errors.New("a submission is already in flight")

	// ErrInvalid is returned when a required field is empty. See Errors for the details.
	ErrInvalid = errors.New("required fields are missing")

	// ErrRejected is returned when the relay answered with ok=false.
	ErrRejected = errors.New("the relay rejected the submission")
)

// Field identifies one input of the form.
type Field string

const (
	Name    Field = "name"
	Email   Field = "email"
	Phone   Field = "phone"
	Company Field = "company"
	Message Field = "message"
)

// State is the phase of the current submission attempt.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Sent
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Sent:
		return "sent"
	}
	return "unknown"
}

// Relay transmits a submission and returns the relay's verdict.
type Relay interface {
	Send(ctx context.Context, submission model.ContactSubmission) (model.Response, error)
}

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Alert(message string) { f(message) }

// Option configures a Form.
type Option func(*Form)

// WithAfterFunc replaces time.AfterFunc for scheduling the return from Sent to Idle.
func WithAfterFunc(afterFunc func(d time.Duration, f func())) Option {
	return func(form *Form) {
		form.afterFunc = afterFunc
	}
}

// Form holds the state of the contact form. It is safe for concurrent use.
type Form struct {
	relay     Relay
	notifier  Notifier
	afterFunc func(d time.Duration, f func())

	mu     sync.Mutex
	values model.ContactSubmission
	errors map[Field]string
	state  State
	// sentGeneration invalidates pending Sent-to-Idle timers of earlier submissions.
	sentGeneration int
}

// New returns an empty, idle form that submits through relay.
func New(relay Relay, notifier Notifier, options ...Option) *Form {
	f := &Form{
		relay:    relay,
		notifier: notifier,
		errors:   map[Field]string{},
		afterFunc: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// Set changes one field and clears the error message of that field.
func (f *Form) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case Name:
		f.values.Name = value
	case Email:
		f.values.Email = value
	case Phone:
		f.values.Phone = value
	case Company:
		f.values.Company = value
	case Message:
		f.values.Message = value
	default:
		return
	}
	delete(f.errors, field)
}

// Values returns the current field values.
func (f *Form) Values() model.ContactSubmission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns a copy of the field error messages of the last validation.
func (f *Form) Errors() map[Field]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := make(map[Field]string, len(f.errors))
	for field, message := range f.errors {
		errs[field] = message
	}
	return errs
}

// State returns the phase the form is in.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Validate checks the required fields, replaces the error messages and reports whether the form
// may be submitted.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() bool {
	errs := map[Field]string{}
	if strings.TrimSpace(f.values.Name) == "" {
		errs[Name] = NameRequired
	}
	if strings.TrimSpace(f.values.Email) == "" {
		errs[Email] = EmailRequired
	}
	if strings.TrimSpace(f.values.Message) == "" {
		errs[Message] = MessageRequired
	}
	f.errors = errs
	return len(errs) == 0
}

// Submit validates the form and, if it is complete, sends it to the relay exactly once. While the
// call is outstanding further calls fail with ErrInFlight. On success the fields are cleared and
// the form shows Sent for SentDisplayInterval. On failure the fields are kept and the notifier
// is alerted.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.state = Validating
	if !f.validateLocked() {
		f.state = Idle
		f.mu.Unlock()
		return ErrInvalid
	}
	f.state = Submitting
	submission := f.values
	f.mu.Unlock()

	completed := false
	defer func() {
		if completed {
			return
		}
		f.mu.Lock()
		if f.state == Submitting {
			f.state = Idle
		}
		f.mu.Unlock()
	}()
	response, err := f.relay.Send(ctx, submission)
	completed = true

	f.mu.Lock()
	if err != nil || !response.OK {
		f.state = Idle
		f.mu.Unlock()
		if err != nil {
			f.notifier.Alert(NetworkErrorAlert)
			return err
		}
		f.notifier.Alert(SendFailedAlert)
		return ErrRejected
	}
	f.values = model.ContactSubmission{}
	f.state = Sent
	f.sentGeneration++
	generation := f.sentGeneration
	f.mu.Unlock()

	f.afterFunc(SentDisplayInterval, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.state == Sent && f.sentGeneration == generation {
			f.state = Idle
		}
	})
	return nil
}
