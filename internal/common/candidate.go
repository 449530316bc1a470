package common

import (
	"fmt"
	"os"
	"path/filepath"

	"careerscope/internal/errors"
	"careerscope/internal/types"
	"careerscope/internal/utils"
)

// CandidateLoader reads a selected file into an UploadCandidate
type CandidateLoader struct {
	maxFileSize int64
	logger      *errors.Logger
}

// NewCandidateLoader creates a candidate loader with the configured size limit
func NewCandidateLoader(maxFileSize int64, logger *errors.Logger) *CandidateLoader {
	return &CandidateLoader{maxFileSize: maxFileSize, logger: logger}
}

// Load validates and reads one file. The extension is normalized to
// lowercase; the upload workflow decides whether it is acceptable.
func (cl *CandidateLoader) Load(filename string) (types.UploadCandidate, error) {
	if err := utils.ValidateInputFile(filename); err != nil {
		if os.IsNotExist(err) {
			return types.UploadCandidate{}, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return types.UploadCandidate{}, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}

	info, err := os.Stat(filename)
	if err != nil {
		return types.UploadCandidate{}, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}
	if info.Size() > cl.maxFileSize {
		return types.UploadCandidate{}, errors.NewValidationError(errors.ErrCodeInvalidFileType,
			fmt.Sprintf("File too large: %s (limit is %s)",
				utils.FormatFileSize(info.Size()), utils.FormatFileSize(cl.maxFileSize)), nil).
			WithContext("filename", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return types.UploadCandidate{}, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file content: %s", filename), err)
	}

	if cl.logger != nil {
		cl.logger.Debug("Loaded upload candidate",
			"filename", filename,
			"size", utils.FormatFileSize(info.Size()))
	}

	return types.UploadCandidate{
		Filename:  filepath.Base(filename),
		Extension: utils.GetFileExtension(filename),
		Data:      data,
	}, nil
}
