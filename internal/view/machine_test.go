package view

import (
	"testing"

	"careerscope/internal/types"
)

func result(name string, score int) types.AnalysisResult {
	return types.AnalysisResult{
		Resume:   types.Resume{Name: name},
		Insights: types.Insights{Score: score},
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name          string
		start         State
		event         Event
		expectedPhase Phase
		expectedError string
		expectedGen   uint64
	}{
		{
			name:          "login from locked unlocks",
			start:         State{Phase: PhaseLocked},
			event:         LoginSucceeded{User: types.UserRecord{Email: "jane@example.com"}},
			expectedPhase: PhaseIdle,
		},
		{
			name:          "login while idle is a no-op",
			start:         State{Phase: PhaseIdle, Generation: 2},
			event:         LoginSucceeded{},
			expectedPhase: PhaseIdle,
			expectedGen:   2,
		},
		{
			name:          "login while uploading is a no-op",
			start:         State{Phase: PhaseUploading, Generation: 3},
			event:         LoginSucceeded{},
			expectedPhase: PhaseUploading,
			expectedGen:   3,
		},
		{
			name:          "file accepted enters uploading and bumps generation",
			start:         State{Phase: PhaseIdle, Generation: 1},
			event:         FileAccepted{},
			expectedPhase: PhaseUploading,
			expectedGen:   2,
		},
		{
			name:          "file accepted clears a lingering banner",
			start:         State{Phase: PhaseIdle, ErrorMessage: "previous failure"},
			event:         FileAccepted{},
			expectedPhase: PhaseUploading,
			expectedGen:   1,
		},
		{
			name:          "file accepted outside idle is a no-op",
			start:         State{Phase: PhaseLocked},
			event:         FileAccepted{},
			expectedPhase: PhaseLocked,
		},
		{
			name:          "file rejected shows banner and stays idle",
			start:         State{Phase: PhaseIdle, Generation: 1},
			event:         FileRejected{Message: "Unsupported file type. Please upload PDF, DOCX, or TXT file."},
			expectedPhase: PhaseIdle,
			expectedError: "Unsupported file type. Please upload PDF, DOCX, or TXT file.",
			expectedGen:   1,
		},
		{
			name:          "file rejected outside idle is a no-op",
			start:         State{Phase: PhaseUploading, Generation: 1},
			event:         FileRejected{Message: "nope"},
			expectedPhase: PhaseUploading,
			expectedGen:   1,
		},
		{
			name:          "analysis success enters dashboard",
			start:         State{Phase: PhaseUploading, Generation: 4},
			event:         AnalysisSucceeded{Generation: 4, Result: result("Jane Doe", 82)},
			expectedPhase: PhaseDashboard,
			expectedGen:   4,
		},
		{
			name:          "stale analysis success is discarded",
			start:         State{Phase: PhaseUploading, Generation: 5},
			event:         AnalysisSucceeded{Generation: 4, Result: result("Jane Doe", 82)},
			expectedPhase: PhaseUploading,
			expectedGen:   5,
		},
		{
			name:          "analysis failure returns to idle with banner",
			start:         State{Phase: PhaseUploading, Generation: 2},
			event:         AnalysisFailed{Generation: 2, Message: "Analysis failed. The service may be offline."},
			expectedPhase: PhaseIdle,
			expectedError: "Analysis failed. The service may be offline.",
			expectedGen:   2,
		},
		{
			name:          "stale analysis failure is discarded",
			start:         State{Phase: PhaseUploading, Generation: 3},
			event:         AnalysisFailed{Generation: 2, Message: "late"},
			expectedPhase: PhaseUploading,
			expectedGen:   3,
		},
		{
			name:          "analysis outcome after logout is discarded",
			start:         State{Phase: PhaseLocked, Generation: 3},
			event:         AnalysisSucceeded{Generation: 2, Result: result("Jane Doe", 82)},
			expectedPhase: PhaseLocked,
			expectedGen:   3,
		},
		{
			name:          "reset leaves dashboard and bumps generation",
			start:         State{Phase: PhaseDashboard, Generation: 4},
			event:         ResetRequested{},
			expectedPhase: PhaseIdle,
			expectedGen:   5,
		},
		{
			name:          "reset outside dashboard is a no-op",
			start:         State{Phase: PhaseIdle, Generation: 4},
			event:         ResetRequested{},
			expectedPhase: PhaseIdle,
			expectedGen:   4,
		},
		{
			name:          "logout from idle locks",
			start:         State{Phase: PhaseIdle, Generation: 1},
			event:         LoggedOut{},
			expectedPhase: PhaseLocked,
			expectedGen:   2,
		},
		{
			name:          "logout from uploading locks and invalidates",
			start:         State{Phase: PhaseUploading, Generation: 2},
			event:         LoggedOut{},
			expectedPhase: PhaseLocked,
			expectedGen:   3,
		},
		{
			name:          "logout from dashboard locks",
			start:         State{Phase: PhaseDashboard, Generation: 2},
			event:         LoggedOut{},
			expectedPhase: PhaseLocked,
			expectedGen:   3,
		},
		{
			name:          "logout while locked is a no-op",
			start:         State{Phase: PhaseLocked, Generation: 2},
			event:         LoggedOut{},
			expectedPhase: PhaseLocked,
			expectedGen:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Transition(tt.start, tt.event)

			if next.Phase != tt.expectedPhase {
				t.Errorf("Expected phase %s, got %s", tt.expectedPhase, next.Phase)
			}
			if next.ErrorMessage != tt.expectedError {
				t.Errorf("Expected banner %q, got %q", tt.expectedError, next.ErrorMessage)
			}
			if next.Generation != tt.expectedGen {
				t.Errorf("Expected generation %d, got %d", tt.expectedGen, next.Generation)
			}
		})
	}
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	start := State{Phase: PhaseIdle, ErrorMessage: "banner", Generation: 7}
	_ = Transition(start, FileAccepted{})

	if start.Phase != PhaseIdle || start.ErrorMessage != "banner" || start.Generation != 7 {
		t.Errorf("Transition mutated its input: %+v", start)
	}
}

func TestTransitionSuccessCarriesResult(t *testing.T) {
	res := result("Jane Doe", 82)
	next := Transition(State{Phase: PhaseUploading, Generation: 1},
		AnalysisSucceeded{Generation: 1, Result: res})

	if next.Result == nil {
		t.Fatal("Expected result to be set in dashboard state")
	}
	if next.Result.Resume.Name != "Jane Doe" {
		t.Errorf("Expected resume name 'Jane Doe', got %q", next.Result.Resume.Name)
	}
	if next.Result.Insights.Score != 82 {
		t.Errorf("Expected score 82, got %d", next.Result.Insights.Score)
	}
	// An empty job list is a valid dashboard, not an error
	if next.ErrorMessage != "" {
		t.Errorf("Expected no banner, got %q", next.ErrorMessage)
	}
}

func TestStateVisibilityHelpers(t *testing.T) {
	tests := []struct {
		name          string
		state         State
		uploadVisible bool
		spinner       bool
		errorVisible  bool
	}{
		{
			name:  "locked hides everything",
			state: State{Phase: PhaseLocked},
		},
		{
			name:          "idle shows the upload surface",
			state:         State{Phase: PhaseIdle},
			uploadVisible: true,
		},
		{
			name:          "idle with banner shows both surface and error",
			state:         State{Phase: PhaseIdle, ErrorMessage: "bad file"},
			uploadVisible: true,
			errorVisible:  true,
		},
		{
			name:    "uploading shows only the spinner",
			state:   State{Phase: PhaseUploading},
			spinner: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.UploadSurfaceVisible(); got != tt.uploadVisible {
				t.Errorf("UploadSurfaceVisible() = %v, want %v", got, tt.uploadVisible)
			}
			if got := tt.state.SpinnerVisible(); got != tt.spinner {
				t.Errorf("SpinnerVisible() = %v, want %v", got, tt.spinner)
			}
			if got := tt.state.ErrorVisible(); got != tt.errorVisible {
				t.Errorf("ErrorVisible() = %v, want %v", got, tt.errorVisible)
			}
		})
	}
}

func TestMachineLifecycle(t *testing.T) {
	m := NewMachine()

	if got := m.State().Phase; got != PhaseLocked {
		t.Fatalf("Expected initial phase locked, got %s", got)
	}

	state := m.Apply(LoginSucceeded{User: types.UserRecord{Email: "jane@example.com"}})
	if state.Phase != PhaseIdle {
		t.Fatalf("Expected idle after login, got %s", state.Phase)
	}

	state = m.Apply(FileAccepted{})
	gen := state.Generation
	if state.Phase != PhaseUploading {
		t.Fatalf("Expected uploading after file accepted, got %s", state.Phase)
	}

	state = m.Apply(AnalysisSucceeded{Generation: gen, Result: result("Jane Doe", 82)})
	if state.Phase != PhaseDashboard {
		t.Fatalf("Expected dashboard after success, got %s", state.Phase)
	}

	state = m.Apply(ResetRequested{})
	if state.Phase != PhaseIdle {
		t.Fatalf("Expected idle after reset, got %s", state.Phase)
	}
	if state.Result != nil {
		t.Error("Expected result to be discarded on reset")
	}

	// The outcome of an upload started before reset must not resurface
	state = m.Apply(AnalysisSucceeded{Generation: gen, Result: result("Stale", 10)})
	if state.Phase != PhaseIdle {
		t.Errorf("Stale outcome changed phase to %s", state.Phase)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseLocked, "locked"},
		{PhaseIdle, "idle"},
		{PhaseUploading, "uploading"},
		{PhaseDashboard, "dashboard"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
}

func BenchmarkTransition(b *testing.B) {
	state := State{Phase: PhaseIdle, Generation: 1}
	for b.Loop() {
		_ = Transition(state, FileAccepted{})
	}
}
