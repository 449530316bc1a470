package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	"careerscope/internal/errors"
	"careerscope/internal/types"
)

const (
	// uploadFieldName is the multipart form field the analysis service
	// reads the document from
	uploadFieldName = "file"

	analysisRejectedFallback = "Failed to analyze resume"
	analysisOfflineMessage   = "Analysis failed. The service may be offline."
	historyRejectedFallback  = "Failed to fetch analysis history"
)

// AnalyzeResume submits one document to the analysis service and returns the
// structured assessment. No retry is attempted on failure.
func (c *Client) AnalyzeResume(ctx context.Context, candidate types.UploadCandidate) (*types.AnalysisResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile(uploadFieldName, candidate.Filename)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to build multipart request", err)
	}
	if _, err := part.Write(candidate.Data); err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to write file into multipart request", err)
	}
	if err := writer.Close(); err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to finalize multipart request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/analyze-resume"), &body)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to build analysis request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.do(ctx, req, c.analysisCB)
	if err != nil {
		return nil, errors.NewNetworkError(errors.ErrCodeServiceUnavailable,
			analysisOfflineMessage, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := errorDetail(resp, analysisRejectedFallback)
		return nil, errors.NewAnalysisError(errors.ErrCodeAnalysisRejected, detail, nil).
			WithContext("status", resp.StatusCode).
			WithContext("filename", candidate.Filename)
	}

	var result types.AnalysisResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, errors.NewAnalysisError(errors.ErrCodeInvalidResponse,
			"Analysis service returned a malformed result", err)
	}

	c.logger.Info("Resume analysis completed",
		"filename", candidate.Filename,
		"score", result.Insights.Score,
		"jobs", len(result.Jobs))

	return &result, nil
}

// History fetches recently stored analyses from the service, newest first
func (c *Client) History(ctx context.Context) ([]types.AnalysisRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/analyses"), nil)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to build history request", err)
	}

	resp, err := c.do(ctx, req, c.analysisCB)
	if err != nil {
		return nil, errors.NewNetworkError(errors.ErrCodeServiceUnavailable,
			analysisOfflineMessage, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := errorDetail(resp, historyRejectedFallback)
		return nil, errors.NewAnalysisError(errors.ErrCodeAnalysisRejected, detail, nil).
			WithContext("status", resp.StatusCode)
	}

	var records []types.AnalysisRecord
	if err := decodeJSON(resp, &records); err != nil {
		return nil, errors.NewAnalysisError(errors.ErrCodeInvalidResponse,
			"Analysis service returned malformed history", err)
	}

	return records, nil
}
