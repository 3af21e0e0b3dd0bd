package viewstate

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
)

// Mode is the kind of dialog session.
type Mode int

const (
	ModeCreate Mode = iota + 1
	ModeEdit
)

var (
	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrDialogOpen is returned when a second session is opened in one view.
	ErrDialogOpen = errors.New("dialog already open")
	// ErrDialogClosed is returned when submitting a dialog that is not open.
	ErrDialogClosed = errors.New("dialog not open")
	// ErrSubmitPending is returned while a previous submission is in flight.
	ErrSubmitPending = errors.New("submission in progress")
	// ErrStaleSubmission is returned when a result arrives for a session that
	// has since closed, even if another session is open now.
	ErrStaleSubmission = errors.New("submission belongs to a closed session")
)

// ValidationError lists the tracked fields that failed their rule.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Submission is a validated request ready for the remote service.
type Submission struct {
	// Session identifies the dialog session that produced the submission.
	Session  uint64
	Mode     Mode
	TargetID int64
	Fields   map[string]string
}

// SubmitFunc performs the remote create or update for a submission.
type SubmitFunc func(ctx context.Context, sub Submission) error

// Dialog governs one create-or-edit form interaction:
// Closed -> Open -> (submit ok | cancel) -> Closed.
type Dialog struct {
	form    Form
	open    bool
	pending bool
	session uint64
	mode    Mode
	target  int64
	values  map[string]string
	states  map[string]FieldState
	onClose []func()
}

// NewDialog returns a closed dialog over form.
func NewDialog(form Form) *Dialog {
	return &Dialog{
		form:   form,
		values: map[string]string{},
		states: map[string]FieldState{},
	}
}

// OpenCreate opens a create session. Tracked fields start from their defaults
// and seed adds or overrides values, including untracked context such as the
// owning store id.
func (d *Dialog) OpenCreate(seed map[string]string) error {
	return d.begin(ModeCreate, 0, seed, true)
}

// OpenEdit opens an edit session seeded from the target's current values.
func (d *Dialog) OpenEdit(id int64, seed map[string]string) error {
	return d.begin(ModeEdit, id, seed, false)
}

func (d *Dialog) begin(mode Mode, id int64, seed map[string]string, defaults bool) error {
	if d.open {
		return ErrDialogOpen
	}
	d.reset()
	if defaults {
		for _, field := range d.form.Fields {
			d.values[field.Name] = field.Default
		}
	}
	maps.Copy(d.values, seed)
	d.session++
	d.open = true
	d.mode = mode
	d.target = id
	return nil
}

// Session returns the id of the current or most recent session.
func (d *Dialog) Session() uint64 { return d.session }

// IsOpen reports whether a session is active.
func (d *Dialog) IsOpen() bool { return d.open }

// Pending reports whether a submission is awaiting its remote result.
func (d *Dialog) Pending() bool { return d.pending }

// Mode returns the session mode; zero when closed.
func (d *Dialog) Mode() Mode { return d.mode }

// Target returns the edited entity id; zero in create mode.
func (d *Dialog) Target() int64 { return d.target }

// Form returns the tracked field specs.
func (d *Dialog) Form() Form { return d.form }

// Value returns the current text of a field.
func (d *Dialog) Value(name string) string { return d.values[name] }

// State returns the validation display state of a field.
func (d *Dialog) State(name string) FieldState { return d.states[name] }

// Values returns a copy of every field value, tracked or not.
func (d *Dialog) Values() map[string]string { return maps.Clone(d.values) }

// SetField records an edit and recomputes only that field's state. It is a
// no-op while closed.
func (d *Dialog) SetField(name, value string) FieldState {
	if !d.open {
		return FieldNone
	}
	d.values[name] = value
	spec, tracked := d.form.spec(name)
	if !tracked {
		return FieldNone
	}
	state := spec.Rule(value)
	d.states[name] = state
	return state
}

// OnClose registers a hook that runs once when the current session closes,
// whichever path closes it. Hooks are dropped after they run.
func (d *Dialog) OnClose(fn func()) {
	d.onClose = append(d.onClose, fn)
}

// Prepare validates every tracked field. On failure the session stays open and
// a *ValidationError is returned; on success the submission is marked pending.
func (d *Dialog) Prepare() (Submission, error) {
	if !d.open {
		return Submission{}, ErrDialogClosed
	}
	if d.pending {
		return Submission{}, ErrSubmitPending
	}
	var failed []string
	for _, spec := range d.form.Fields {
		state := spec.Rule(d.values[spec.Name])
		d.states[spec.Name] = state
		if state == FieldError {
			failed = append(failed, spec.Name)
		}
	}
	if len(failed) > 0 {
		return Submission{}, &ValidationError{Fields: failed}
	}
	d.pending = true
	return Submission{Session: d.session, Mode: d.mode, TargetID: d.target, Fields: maps.Clone(d.values)}, nil
}

// Complete resolves the pending submission of session. A nil result closes
// the session; a failure keeps it open with the user's input intact and is
// returned as is. Results for an earlier session leave the dialog untouched.
func (d *Dialog) Complete(session uint64, result error) error {
	if session != d.session {
		return ErrStaleSubmission
	}
	if !d.open || !d.pending {
		return ErrDialogClosed
	}
	d.pending = false
	if result != nil {
		return result
	}
	d.Close()
	return nil
}

// Submit runs Prepare, fn and Complete in sequence.
func (d *Dialog) Submit(ctx context.Context, fn SubmitFunc) error {
	sub, err := d.Prepare()
	if err != nil {
		return err
	}
	return d.Complete(sub.Session, fn(ctx, sub))
}

// Cancel discards local edits without contacting the remote service.
func (d *Dialog) Cancel() {
	d.Close()
}

// Close ends the session: fields and validation states are cleared and the
// session's close hooks run. Closing a closed dialog does nothing.
func (d *Dialog) Close() {
	if !d.open {
		return
	}
	d.reset()
	hooks := d.onClose
	d.onClose = nil
	for _, fn := range hooks {
		fn()
	}
}

func (d *Dialog) reset() {
	d.open = false
	d.pending = false
	d.mode = 0
	d.target = 0
	clear(d.values)
	clear(d.states)
}
