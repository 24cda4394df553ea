package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxArtifactSize is 25MB in bytes; STEP exports of large assemblies
	// routinely exceed the few-MB range of plain drawings.
	MaxArtifactSize = 25 * 1024 * 1024
)

// allowedArtifactFormats are the design-file extensions accepted for order
// artifacts: 3D models (STEP) and 2D draft designs.
var allowedArtifactFormats = map[string]bool{
	".step": true,
	".stp":  true,
	".dxf":  true,
	".pdf":  true,
	".png":  true,
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateArtifactFile validates the uploaded design file format and size
func ValidateArtifactFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxArtifactSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxArtifactSize/(1024*1024)),
		}
	}

	if fileHeader.Size == 0 {
		return &FileUploadError{
			Code:    "EMPTY_FILE",
			Message: "Uploaded file is empty",
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedArtifactFormats[ext] {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("File format %q is not allowed; accepted formats: .step, .stp, .dxf, .pdf, .png", ext),
		}
	}

	return nil
}

// AllowedArtifactFormats returns the accepted extensions, for error messages
// and client hints.
func AllowedArtifactFormats() []string {
	formats := make([]string, 0, len(allowedArtifactFormats))
	for ext := range allowedArtifactFormats {
		formats = append(formats, ext)
	}
	return formats
}
