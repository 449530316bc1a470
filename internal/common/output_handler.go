package common

import (
	"fmt"
	"os"

	"careerscope/internal/errors"
	"careerscope/internal/render"
	"careerscope/internal/utils"
)

// CommandConfig holds common configuration for commands
type CommandConfig struct {
	OutputFile   string
	OutputFormat string
}

// OutputHandler handles formatting and writing command output
type OutputHandler struct {
	registry *render.FormatterRegistry
	logger   *errors.Logger
}

// NewOutputHandler creates a new output handler
func NewOutputHandler(logger *errors.Logger) *OutputHandler {
	return &OutputHandler{
		registry: render.GlobalRegistry,
		logger:   logger,
	}
}

// HandleOutput formats data and writes it to the specified output
func (oh *OutputHandler) HandleOutput(data any, config CommandConfig) error {
	if err := utils.ValidateOutputFile(config.OutputFile); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Invalid output file: %s", config.OutputFile), err)
	}

	output, err := oh.registry.Format(data, config.OutputFormat)
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Failed to format output as %s", config.OutputFormat), err)
	}

	if config.OutputFile != "" {
		if err := os.WriteFile(config.OutputFile, []byte(output), 0600); err != nil {
			return errors.NewIOError(errors.ErrCodeFileNotReadable,
				fmt.Sprintf("Failed to write output file: %s", config.OutputFile), err)
		}

		oh.logger.Info("Output written successfully",
			"file", config.OutputFile, "format", config.OutputFormat)
	} else {
		fmt.Print(output)
	}

	return nil
}

// GetSupportedFormats returns all supported output formats
func (oh *OutputHandler) GetSupportedFormats() []string {
	return oh.registry.GetSupportedFormats()
}
