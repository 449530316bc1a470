// Package view implements the client's view state machine: the discrete UI
// modes (locked, idle, uploading, dashboard) and the transition rules driven
// by upload and auth outcomes. Transitions are expressed as a pure function
// over immutable State values so every rule is testable without a live UI
// surface; Machine owns the single current state for the life of the process.
package view

import (
	"sync"

	"careerscope/internal/types"
)

// Phase represents the discrete UI mode the client is in
type Phase int

const (
	// PhaseLocked is the initial phase: no authenticated user, the upload
	// surface is not reachable.
	PhaseLocked Phase = iota
	// PhaseIdle shows the upload surface and waits for a file selection
	PhaseIdle
	// PhaseUploading hides the upload surface and shows the progress
	// indicator while exactly one request is in flight.
	PhaseUploading
	// PhaseDashboard renders the analysis result
	PhaseDashboard
)

// String returns the phase name for logs and tests
func (p Phase) String() string {
	switch p {
	case PhaseLocked:
		return "locked"
	case PhaseIdle:
		return "idle"
	case PhaseUploading:
		return "uploading"
	case PhaseDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// State is one snapshot of the view state machine. The error banner is
// transient state orthogonal to the phase: an error shown while Idle keeps
// the upload surface visible, which is the retry path.
type State struct {
	Phase Phase

	// Result is set only in PhaseDashboard. It is replaced wholesale on
	// every new analysis.
	Result *types.AnalysisResult

	// ErrorMessage is the error banner text; empty means hidden
	ErrorMessage string

	// Generation increments whenever a previously issued request outcome
	// becomes irrelevant (new upload, reset, logout). Outcome events carry
	// the generation stamped at submission; stale generations are ignored.
	Generation uint64
}

// UploadSurfaceVisible reports whether the drop zone / file input is shown
func (s State) UploadSurfaceVisible() bool {
	return s.Phase == PhaseIdle
}

// SpinnerVisible reports whether the in-flight indicator is shown
func (s State) SpinnerVisible() bool {
	return s.Phase == PhaseUploading
}

// ErrorVisible reports whether the error banner is shown
func (s State) ErrorVisible() bool {
	return s.ErrorMessage != ""
}

// Event is a discrete input to the state machine
type Event interface {
	isEvent()
}

// LoginSucceeded unlocks the workflow. It only has effect in PhaseLocked;
// a login while already unlocked is a no-op.
type LoginSucceeded struct {
	User types.UserRecord
}

// FileAccepted records that a valid file was selected and the upload is
// about to be issued. Applying it hides the upload surface and clears the
// error banner before the request starts, so a fast failure cannot show a
// stale combination of states.
type FileAccepted struct {
	Candidate types.UploadCandidate
}

// FileRejected records a local validation failure; no request was sent.
// The phase is unchanged, only the banner toggles.
type FileRejected struct {
	Message string
}

// AnalysisSucceeded carries a completed analysis. Generation must equal the
// value stamped when the upload was accepted, otherwise the event is stale
// and ignored.
type AnalysisSucceeded struct {
	Generation uint64
	Result     types.AnalysisResult
}

// AnalysisFailed carries an upload failure (rejection or transport error)
type AnalysisFailed struct {
	Generation uint64
	Message    string
}

// ResetRequested discards the dashboard and returns to the upload surface
type ResetRequested struct{}

// LoggedOut locks the workflow from any phase
type LoggedOut struct{}

func (LoginSucceeded) isEvent()    {}
func (FileAccepted) isEvent()      {}
func (FileRejected) isEvent()      {}
func (AnalysisSucceeded) isEvent() {}
func (AnalysisFailed) isEvent()    {}
func (ResetRequested) isEvent()    {}
func (LoggedOut) isEvent()         {}

// Transition applies one event to a state and returns the next state.
// Unexpected events leave the state unchanged; every reachable state is
// interactive, so nothing here can dead-end the machine.
func Transition(s State, ev Event) State {
	switch ev := ev.(type) {
	case LoginSucceeded:
		if s.Phase != PhaseLocked {
			return s
		}
		return State{Phase: PhaseIdle, Generation: s.Generation}

	case FileAccepted:
		if s.Phase != PhaseIdle {
			return s
		}
		// Banner cleared and surface hidden synchronously, before the
		// asynchronous call begins.
		return State{Phase: PhaseUploading, Generation: s.Generation + 1}

	case FileRejected:
		if s.Phase != PhaseIdle {
			return s
		}
		return State{Phase: PhaseIdle, ErrorMessage: ev.Message, Generation: s.Generation}

	case AnalysisSucceeded:
		if s.Phase != PhaseUploading || ev.Generation != s.Generation {
			return s
		}
		result := ev.Result
		return State{Phase: PhaseDashboard, Result: &result, Generation: s.Generation}

	case AnalysisFailed:
		if s.Phase != PhaseUploading || ev.Generation != s.Generation {
			return s
		}
		// Back to Idle with the banner shown: the drop zone reappears and
		// the caller may re-initiate the upload manually.
		return State{Phase: PhaseIdle, ErrorMessage: ev.Message, Generation: s.Generation}

	case ResetRequested:
		if s.Phase != PhaseDashboard {
			return s
		}
		return State{Phase: PhaseIdle, Generation: s.Generation + 1}

	case LoggedOut:
		if s.Phase == PhaseLocked {
			return s
		}
		return State{Phase: PhaseLocked, Generation: s.Generation + 1}

	default:
		return s
	}
}

// Machine owns the single current view state for the lifetime of the
// process. Apply serializes transitions so workflow goroutines and the UI
// loop can share it.
type Machine struct {
	mu    sync.Mutex
	state State
}

// NewMachine creates a machine in the initial Locked phase
func NewMachine() *Machine {
	return &Machine{state: State{Phase: PhaseLocked}}
}

// Apply transitions the machine with one event and returns the new state
func (m *Machine) Apply(ev Event) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Transition(m.state, ev)
	return m.state
}

// State returns the current state snapshot
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
