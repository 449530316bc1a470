package workflow

import (
	"context"
	"sync"

	"careerscope/internal/errors"
	"careerscope/internal/session"
	"careerscope/internal/types"
	"careerscope/internal/view"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Mode selects which auth endpoint and payload shape is used. Toggling the
// mode performs no I/O by itself.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// AuthService is the part of the API client the auth workflow needs
type AuthService interface {
	Login(ctx context.Context, creds types.Credentials) (*types.UserRecord, error)
	Signup(ctx context.Context, creds types.Credentials) (*types.UserRecord, error)
}

// Auth collects credentials, submits them to the auth service and on
// success updates the session and unlocks the workflow. While a submission
// is pending the submit control is reported disabled via Submitting; the
// flag is released on every path, including panics, via defer.
type Auth struct {
	service AuthService
	machine *view.Machine
	session *session.Session
	logger  *errors.Logger

	mu         sync.Mutex
	submitting bool
}

// NewAuth creates the auth workflow
func NewAuth(service AuthService, machine *view.Machine, sess *session.Session, logger *errors.Logger) *Auth {
	return &Auth{
		service: service,
		machine: machine,
		session: sess,
		logger:  logger,
	}
}

// Submitting reports whether a submission is currently pending. The auth
// surface disables its submit control while this is true.
func (a *Auth) Submitting() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.submitting
}

// Submit validates and submits credentials for the given mode. On success
// the session is updated and the view machine transitions Locked to Idle.
// On rejection or transport failure the session and view state are
// unchanged and the auth surface stays open for retry.
func (a *Auth) Submit(ctx context.Context, mode Mode, creds types.Credentials) (*types.UserRecord, error) {
	a.mu.Lock()
	if a.submitting {
		a.mu.Unlock()
		return nil, errors.NewValidationError(errors.ErrCodeAuthInFlight,
			"An authentication request is already in progress", nil)
	}
	a.submitting = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.submitting = false
		a.mu.Unlock()
	}()

	tracer := otel.Tracer("careerscope/workflow")
	ctx, span := tracer.Start(ctx, "auth.submit")
	defer span.End()
	span.SetAttributes(attribute.String("auth.mode", string(mode)))

	if err := validateCredentials(mode, creds); err != nil {
		span.RecordError(err)
		return nil, err
	}

	var user *types.UserRecord
	var err error
	switch mode {
	case ModeSignup:
		user, err = a.service.Signup(ctx, creds)
	case ModeLogin:
		user, err = a.service.Login(ctx, creds)
	default:
		return nil, errors.NewValidationError(errors.ErrCodeMissingCredentials,
			"Unknown auth mode: "+string(mode), nil)
	}

	if err != nil {
		span.RecordError(err)
		a.logger.Warn("Authentication attempt failed", "mode", string(mode), "error", err.Error())
		return nil, err
	}

	a.session.Login(*user)
	a.machine.Apply(view.LoginSucceeded{User: *user})

	return user, nil
}

// Logout clears the session and locks the workflow from any phase. An
// in-flight upload is not cancelled; its result will arrive with a stale
// generation and be discarded by the machine.
func (a *Auth) Logout() view.State {
	a.session.Logout()
	state := a.machine.Apply(view.LoggedOut{})
	a.logger.Info("Session ended")
	return state
}

// validateCredentials checks the fields required by the given mode
func validateCredentials(mode Mode, creds types.Credentials) error {
	if creds.Email == "" || creds.Password == "" {
		return errors.NewValidationError(errors.ErrCodeMissingCredentials,
			"Email and password are required", nil)
	}
	if mode == ModeSignup && creds.Name == "" {
		return errors.NewValidationError(errors.ErrCodeMissingCredentials,
			"Name is required to sign up", nil)
	}
	return nil
}
