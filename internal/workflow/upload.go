// Package workflow implements the upload and auth workflows: the glue
// between user actions, the external services, and the view state machine.
package workflow

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"careerscope/internal/errors"
	"careerscope/internal/session"
	"careerscope/internal/types"
	"careerscope/internal/view"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// AnalysisService is the part of the API client the upload workflow needs
type AnalysisService interface {
	AnalyzeResume(ctx context.Context, candidate types.UploadCandidate) (*types.AnalysisResult, error)
}

// Upload validates a selected file, submits it to the analysis service and
// routes the outcome into the view state machine. At most one upload is in
// flight at any time; a submission while one is pending is rejected
// explicitly rather than silently overwriting it.
type Upload struct {
	service AnalysisService
	machine *view.Machine
	session *session.Session
	allowed []string
	logger  *errors.Logger
}

// NewUpload creates the upload workflow
func NewUpload(service AnalysisService, machine *view.Machine, sess *session.Session, allowedExtensions []string, logger *errors.Logger) *Upload {
	return &Upload{
		service: service,
		machine: machine,
		session: sess,
		allowed: allowedExtensions,
		logger:  logger,
	}
}

// Submit runs one upload end to end and returns the resulting view state.
// The candidate is not retained: it is discarded once the request resolves.
func (u *Upload) Submit(ctx context.Context, candidate types.UploadCandidate) (view.State, error) {
	tracer := otel.Tracer("careerscope/workflow")
	ctx, span := tracer.Start(ctx, "upload.submit")
	defer span.End()
	span.SetAttributes(attribute.String("upload.filename", candidate.Filename))

	state := u.machine.State()

	if state.Phase == view.PhaseUploading {
		err := errors.NewValidationError(errors.ErrCodeUploadInFlight,
			"An upload is already in progress", nil)
		span.RecordError(err)
		return state, err
	}

	// The uploader is invisible while locked, but the workflow does not
	// assume the caller enforced that.
	if !u.session.Authenticated() {
		err := errors.NewAuthError(errors.ErrCodeNotAuthenticated,
			"Sign in to upload a resume", nil)
		span.RecordError(err)
		return state, err
	}

	if state.Phase != view.PhaseIdle {
		err := errors.NewValidationError(errors.ErrCodeUploadInFlight,
			fmt.Sprintf("Upload is not available while %s", state.Phase), nil)
		span.RecordError(err)
		return state, err
	}

	if !slices.Contains(u.allowed, candidate.Extension) {
		msg := u.invalidTypeMessage()
		state = u.machine.Apply(view.FileRejected{Message: msg})
		err := errors.NewValidationError(errors.ErrCodeInvalidFileType, msg, nil).
			WithContext("filename", candidate.Filename).
			WithContext("extension", candidate.Extension)
		span.RecordError(err)
		return state, err
	}

	// Entering Uploading hides the upload surface and clears the banner
	// before the request is issued; the returned generation stamps this
	// request so a stale outcome can be discarded later.
	state = u.machine.Apply(view.FileAccepted{Candidate: candidate})
	generation := state.Generation

	u.logger.Info("Submitting resume for analysis",
		"filename", candidate.Filename,
		"size_bytes", len(candidate.Data))

	result, err := u.service.AnalyzeResume(ctx, candidate)
	if err != nil {
		span.RecordError(err)
		state = u.machine.Apply(view.AnalysisFailed{
			Generation: generation,
			Message:    userMessage(err),
		})
		return state, err
	}

	span.SetAttributes(
		attribute.Int("analysis.score", result.Insights.Score),
		attribute.Int("analysis.jobs", len(result.Jobs)),
	)

	state = u.machine.Apply(view.AnalysisSucceeded{
		Generation: generation,
		Result:     *result,
	})
	return state, nil
}

// Reset discards the dashboard and returns to the upload surface
func (u *Upload) Reset() view.State {
	return u.machine.Apply(view.ResetRequested{})
}

// invalidTypeMessage builds the user-visible rejection message from the
// configured extension allowlist, e.g. "PDF, DOCX, or TXT"
func (u *Upload) invalidTypeMessage() string {
	names := make([]string, len(u.allowed))
	for i, ext := range u.allowed {
		names[i] = strings.ToUpper(strings.TrimPrefix(ext, "."))
	}

	var list string
	switch len(names) {
	case 1:
		list = names[0]
	case 2:
		list = names[0] + " or " + names[1]
	default:
		list = strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}

	return fmt.Sprintf("Unsupported file type. Please upload %s file.", list)
}

// userMessage extracts the banner text for a failed upload. Structured
// errors already carry the service's detail or the offline fallback.
func userMessage(err error) string {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr.Message
	}
	return "Analysis failed. The service may be offline."
}
