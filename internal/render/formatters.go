// Package render maps analysis results to displayable output. Formatting is
// pure: input order is preserved, nothing is sorted, deduplicated or
// clamped, and the underlying data is never modified.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"careerscope/internal/types"
)

const (
	// jobSkillsDisplayCap limits how many matched skills one job card shows
	jobSkillsDisplayCap = 3
	// highlightDisplayCap limits how many highlights one experience entry shows
	highlightDisplayCap = 4
	// salaryPlaceholder is shown when a job match carries no salary estimate
	salaryPlaceholder = "$120k - $150k"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &DashboardTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &DashboardMarkdownFormatter{})
	registry.RegisterFormatter("text", "AnalysisRecords", &HistoryTextFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult:
		return "AnalysisResult"
	case []types.AnalysisRecord:
		return "AnalysisRecords"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// DashboardTextFormatter renders the full analysis dashboard as plain text
type DashboardTextFormatter struct{}

func (df *DashboardTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("=== CAREER PROFILE: %s ===\n\n", result.Resume.Name))
	output.WriteString(fmt.Sprintf("Readiness Score: %d%%\n", result.Insights.Score))
	output.WriteString(fmt.Sprintf("Market Demand:   %s\n", result.Insights.MarketDemand))
	output.WriteString(fmt.Sprintf("Skills:          %d\n", len(result.Resume.Skills)))
	output.WriteString(fmt.Sprintf("Job Matches:     %d\n\n", len(result.Jobs)))

	if result.Resume.Summary != "" {
		output.WriteString("=== SUMMARY ===\n")
		output.WriteString(result.Resume.Summary)
		output.WriteString("\n\n")
	}

	output.WriteString("=== WORK HISTORY ===\n")
	for i, exp := range result.Resume.Experience {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, exp.Title))
		output.WriteString(fmt.Sprintf("   %s | %s\n", exp.Company, exp.Duration))
		for _, h := range capStrings(exp.Highlights, highlightDisplayCap) {
			output.WriteString(fmt.Sprintf("   - %s\n", h))
		}
	}
	output.WriteString("\n")

	if len(result.Resume.Education) > 0 {
		output.WriteString("=== EDUCATION ===\n")
		for _, edu := range result.Resume.Education {
			output.WriteString(fmt.Sprintf("- %s, %s (%s)\n", edu.Degree, edu.Institution, edu.Year))
		}
		output.WriteString("\n")
	}

	if len(result.Insights.TopRecommendations) > 0 {
		output.WriteString("=== ROADMAP ===\n")
		for i, rec := range result.Insights.TopRecommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
		output.WriteString("\n")
	}

	if len(result.Insights.GapAnalysis) > 0 {
		output.WriteString("=== GAPS ===\n")
		output.WriteString(strings.Join(result.Insights.GapAnalysis, ", "))
		output.WriteString("\n\n")
	}

	output.WriteString("=== SKILLS ===\n")
	output.WriteString(strings.Join(result.Resume.Skills, ", "))
	output.WriteString("\n\n")

	output.WriteString("=== JOB MATCHES ===\n")
	for _, job := range result.Jobs {
		output.WriteString(fmt.Sprintf("%s (%d%% match)\n", job.Title, job.MatchScore))
		output.WriteString(fmt.Sprintf("   %s | %s\n", job.Company, job.Location))
		output.WriteString(fmt.Sprintf("   \"%s\"\n", job.Reason))
		if len(job.SkillsFound) > 0 {
			output.WriteString(fmt.Sprintf("   Skills: %s\n",
				strings.Join(capStrings(job.SkillsFound, jobSkillsDisplayCap), ", ")))
		}
		output.WriteString(fmt.Sprintf("   Salary: %s\n\n", salaryOrPlaceholder(job.SalaryEstimate)))
	}

	return output.String(), nil
}

func (df *DashboardTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// DashboardMarkdownFormatter renders the full analysis dashboard as markdown
type DashboardMarkdownFormatter struct{}

func (dmf *DashboardMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# Career Profile: %s\n\n", result.Resume.Name))
	output.WriteString(fmt.Sprintf("**Readiness Score:** %d%%  \n", result.Insights.Score))
	output.WriteString(fmt.Sprintf("**Market Demand:** %s  \n", result.Insights.MarketDemand))
	output.WriteString(fmt.Sprintf("**Skills:** %d  \n", len(result.Resume.Skills)))
	output.WriteString(fmt.Sprintf("**Job Matches:** %d\n\n", len(result.Jobs)))

	if result.Resume.Summary != "" {
		output.WriteString("## Summary\n\n")
		output.WriteString(result.Resume.Summary)
		output.WriteString("\n\n")
	}

	output.WriteString("## Work History\n\n")
	for i, exp := range result.Resume.Experience {
		output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, exp.Title))
		output.WriteString(fmt.Sprintf("%s | %s\n\n", exp.Company, exp.Duration))
		for _, h := range capStrings(exp.Highlights, highlightDisplayCap) {
			output.WriteString(fmt.Sprintf("- %s\n", h))
		}
		output.WriteString("\n")
	}

	if len(result.Resume.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range result.Resume.Education {
			output.WriteString(fmt.Sprintf("- %s, %s (%s)\n", edu.Degree, edu.Institution, edu.Year))
		}
		output.WriteString("\n")
	}

	if len(result.Insights.TopRecommendations) > 0 {
		output.WriteString("## Roadmap\n\n")
		for i, rec := range result.Insights.TopRecommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
		output.WriteString("\n")
	}

	if len(result.Insights.GapAnalysis) > 0 {
		output.WriteString("## Gaps\n\n")
		output.WriteString(strings.Join(result.Insights.GapAnalysis, ", "))
		output.WriteString("\n\n")
	}

	output.WriteString("## Skills\n\n")
	output.WriteString(strings.Join(result.Resume.Skills, ", "))
	output.WriteString("\n\n")

	output.WriteString("## Job Matches\n\n")
	for _, job := range result.Jobs {
		output.WriteString(fmt.Sprintf("### %s (%d%% match)\n\n", job.Title, job.MatchScore))
		output.WriteString(fmt.Sprintf("%s | %s\n\n", job.Company, job.Location))
		output.WriteString(fmt.Sprintf("> %s\n\n", job.Reason))
		if len(job.SkillsFound) > 0 {
			output.WriteString(fmt.Sprintf("**Skills:** %s  \n",
				strings.Join(capStrings(job.SkillsFound, jobSkillsDisplayCap), ", ")))
		}
		output.WriteString(fmt.Sprintf("**Salary:** %s\n\n", salaryOrPlaceholder(job.SalaryEstimate)))
	}

	return output.String(), nil
}

func (dmf *DashboardMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// HistoryTextFormatter renders stored analyses as a plain text list
type HistoryTextFormatter struct{}

func (hf *HistoryTextFormatter) Format(data any) (string, error) {
	records, ok := data.([]types.AnalysisRecord)
	if !ok {
		return "", fmt.Errorf("expected []AnalysisRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RECENT ANALYSES ===\n\n")
	if len(records) == 0 {
		output.WriteString("No analyses stored yet.\n")
		return output.String(), nil
	}

	for i, rec := range records {
		output.WriteString(fmt.Sprintf("%d. %s (score %d, %d job matches)\n",
			i+1, rec.Resume.Name, rec.Insights.Score, len(rec.Jobs)))
		if rec.Timestamp != "" {
			output.WriteString(fmt.Sprintf("   %s\n", rec.Timestamp))
		}
	}

	return output.String(), nil
}

func (hf *HistoryTextFormatter) SupportedType() string {
	return "AnalysisRecords"
}

// capStrings limits the number of displayed entries without modifying the
// input slice
func capStrings(values []string, limit int) []string {
	if len(values) <= limit {
		return values
	}
	return values[:limit]
}

// salaryOrPlaceholder substitutes the fixed placeholder when the service
// sent no estimate
func salaryOrPlaceholder(estimate *string) string {
	if estimate == nil || *estimate == "" {
		return salaryPlaceholder
	}
	return *estimate
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
