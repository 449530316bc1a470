package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"careerscope/internal/config"
	"careerscope/internal/errors"
	"careerscope/internal/types"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := &config.APIConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}
	return NewClient(cfg, testLogger(t))
}

func testCandidate() types.UploadCandidate {
	return types.UploadCandidate{
		Filename:  "resume.pdf",
		Extension: ".pdf",
		Data:      []byte("%PDF-1.4 fake"),
	}
}

func assertAppError(t *testing.T, err error, code string) *errors.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error with code %s, got nil", code)
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Errorf("Expected error code %s, got %s", code, appErr.Code)
	}
	return appErr
}

func TestAnalyzeResumeSuccess(t *testing.T) {
	var gotField, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/analyze-resume" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("Expected X-Request-ID header")
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Failed to parse multipart form: %v", err)
		}
		for field, headers := range r.MultipartForm.File {
			gotField = field
			if len(headers) > 0 {
				gotFilename = headers[0].Filename
			}
		}

		salary := "$95k - $110k"
		result := types.AnalysisResult{
			Resume: types.Resume{
				Name:   "Jane Doe",
				Skills: []string{"Go", "SQL", "Kubernetes"},
			},
			Jobs: []types.JobMatch{
				{
					Title:          "Backend Engineer",
					Company:        "Acme",
					Location:       "Remote",
					MatchScore:     88,
					Reason:         "Strong overlap on core skills",
					SkillsFound:    []string{"Go", "SQL"},
					SalaryEstimate: &salary,
				},
			},
			Insights: types.Insights{Score: 82, MarketDemand: "High"},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}))
	defer server.Close()

	client := testClient(t, server.URL+"/api")

	result, err := client.AnalyzeResume(context.Background(), testCandidate())
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if gotField != "file" {
		t.Errorf("Expected multipart field 'file', got %q", gotField)
	}
	if gotFilename != "resume.pdf" {
		t.Errorf("Expected filename 'resume.pdf', got %q", gotFilename)
	}
	if result.Resume.Name != "Jane Doe" {
		t.Errorf("Expected resume name 'Jane Doe', got %q", result.Resume.Name)
	}
	if result.Insights.Score != 82 {
		t.Errorf("Expected score 82, got %d", result.Insights.Score)
	}
	if len(result.Jobs) != 1 || *result.Jobs[0].SalaryEstimate != "$95k - $110k" {
		t.Errorf("Unexpected jobs payload: %+v", result.Jobs)
	}
}

func TestAnalyzeResumeRejection(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{
			name:            "detail from service",
			status:          http.StatusBadRequest,
			body:            `{"detail": "Only PDF, DOCX, and TXT files are supported"}`,
			expectedMessage: "Only PDF, DOCX, and TXT files are supported",
		},
		{
			name:            "server failure with detail",
			status:          http.StatusInternalServerError,
			body:            `{"detail": "Failed to analyze resume"}`,
			expectedMessage: "Failed to analyze resume",
		},
		{
			name:            "body without detail falls back",
			status:          http.StatusBadGateway,
			body:            `{"error": "upstream"}`,
			expectedMessage: "Failed to analyze resume",
		},
		{
			name:            "non-JSON body falls back",
			status:          http.StatusServiceUnavailable,
			body:            "gateway timeout",
			expectedMessage: "Failed to analyze resume",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := testClient(t, server.URL+"/api")

			_, err := client.AnalyzeResume(context.Background(), testCandidate())

			appErr := assertAppError(t, err, errors.ErrCodeAnalysisRejected)
			if appErr.Message != tt.expectedMessage {
				t.Errorf("Expected message %q, got %q", tt.expectedMessage, appErr.Message)
			}
		})
	}
}

func TestAnalyzeResumeOffline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := testClient(t, server.URL+"/api")

	_, err := client.AnalyzeResume(context.Background(), testCandidate())

	appErr := assertAppError(t, err, errors.ErrCodeServiceUnavailable)
	if appErr.Message != "Analysis failed. The service may be offline." {
		t.Errorf("Unexpected offline message: %q", appErr.Message)
	}
}

func TestAnalyzeResumeMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := testClient(t, server.URL+"/api")

	_, err := client.AnalyzeResume(context.Background(), testCandidate())
	assertAppError(t, err, errors.ErrCodeInvalidResponse)
}

func TestLoginSuccess(t *testing.T) {
	var gotPayload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("Failed to decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "Login successful", "name": "Jane Doe", "email": "jane@example.com", "userId": "u-1"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL+"/api")

	user, err := client.Login(context.Background(), types.Credentials{
		Email:    "jane@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if gotPayload["email"] != "jane@example.com" || gotPayload["password"] != "secret" {
		t.Errorf("Unexpected login payload: %v", gotPayload)
	}
	if _, hasName := gotPayload["name"]; hasName {
		t.Error("Login payload must not carry a name field")
	}
	if user.Name != "Jane Doe" || user.UserID != "u-1" {
		t.Errorf("Unexpected user record: %+v", user)
	}
}

func TestSignupSuccess(t *testing.T) {
	var gotPayload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/signup" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("Failed to decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "Account created", "name": "Jane Doe"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL+"/api")

	user, err := client.Signup(context.Background(), types.Credentials{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if gotPayload["name"] != "Jane Doe" {
		t.Errorf("Expected name in signup payload, got %v", gotPayload)
	}
	if user.Name != "Jane Doe" {
		t.Errorf("Unexpected user record: %+v", user)
	}
}

func TestLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid credentials"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL+"/api")

	_, err := client.Login(context.Background(), types.Credentials{
		Email:    "jane@example.com",
		Password: "wrong",
	})

	appErr := assertAppError(t, err, errors.ErrCodeAuthRejected)
	if appErr.Message != "Invalid credentials" {
		t.Errorf("Expected service detail preserved, got %q", appErr.Message)
	}
}

func TestAuthOffline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := testClient(t, server.URL+"/api")

	_, err := client.Login(context.Background(), types.Credentials{
		Email:    "jane@example.com",
		Password: "secret",
	})

	appErr := assertAppError(t, err, errors.ErrCodeServiceUnavailable)
	if appErr.Message != "Authentication failed. The service may be offline." {
		t.Errorf("Unexpected offline message: %q", appErr.Message)
	}
}

func TestHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/analyses" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "a-2", "resume": {"name": "Jane Doe"}, "insights": {"score": 82}, "timestamp": "2026-08-28T10:00:00Z"},
			{"id": "a-1", "resume": {"name": "Jane Doe"}, "insights": {"score": 74}, "timestamp": "2026-08-27T09:00:00Z"}
		]`))
	}))
	defer server.Close()

	client := testClient(t, server.URL+"/api")

	records, err := client.History(context.Background())
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != "a-2" || records[0].Insights.Score != 82 {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyses" {
			t.Errorf("Trailing slash produced wrong path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := testClient(t, server.URL+"/api/")

	if _, err := client.History(context.Background()); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
}
