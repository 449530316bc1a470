package types

// UserRecord represents the authenticated user as returned by the auth service
type UserRecord struct {
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	UserID string `json:"userId,omitempty"`
}

// Credentials represents the input collected by the auth form.
// Name is only used for signup.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents a successful login or signup response body
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	UserID  string `json:"userId,omitempty"`
}

// UploadCandidate represents a file selected for analysis, before submission
type UploadCandidate struct {
	Filename  string // original file name, e.g. "resume.pdf"
	Extension string // lowercase extension including the dot
	Data      []byte
}

// Experience represents one position in the work history
type Experience struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Duration   string   `json:"duration"`
	Highlights []string `json:"highlights"`
}

// Education represents one entry in the education history
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Resume represents the parsed resume profile
type Resume struct {
	Name       string       `json:"name"`
	Email      string       `json:"email,omitempty"`
	Summary    string       `json:"summary,omitempty"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education,omitempty"`
}

// JobMatch represents a single recommended job posting.
// MatchScore is expected to be 0-100 but is treated as opaque display data;
// the service is the sole enforcer of the range.
type JobMatch struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	MatchScore     int      `json:"matchScore"`
	Reason         string   `json:"reason"`
	SkillsFound    []string `json:"skillsFound"`
	SkillsMissing  []string `json:"skillsMissing,omitempty"`
	SalaryEstimate *string  `json:"salaryEstimate,omitempty"`
}

// Insights represents the scored career assessment
type Insights struct {
	Score              int      `json:"score"` // 0-100, not clamped client-side
	MarketDemand       string   `json:"marketDemand"`
	TopRecommendations []string `json:"topRecommendations"`
	GapAnalysis        []string `json:"gapAnalysis"`
}

// AnalysisResult represents the structured assessment returned by the
// analysis service for one submitted document. It is replaced wholesale on
// every new analysis and never partially mutated.
type AnalysisResult struct {
	Resume   Resume     `json:"resume"`
	Jobs     []JobMatch `json:"jobs"`
	Insights Insights   `json:"insights"`
}

// AnalysisRecord represents one stored analysis as returned by the history
// endpoint, newest first
type AnalysisRecord struct {
	ID        string     `json:"id"`
	Resume    Resume     `json:"resume"`
	Jobs      []JobMatch `json:"jobs"`
	Insights  Insights   `json:"insights"`
	Timestamp string     `json:"timestamp,omitempty"`
}

// ServiceError represents the failure response body of both services
type ServiceError struct {
	Detail string `json:"detail"`
}
