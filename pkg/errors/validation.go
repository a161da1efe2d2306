package errors

import (
	"strings"
	"unicode"
)

// ValidateLatitude checks that a latitude is within [-90, 90].
func ValidateLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return New(ErrCodeInvalidCoordinate, "latitude must be in [-90, 90], got %g", lat)
	}
	return nil
}

// ValidateLongitude checks that a longitude is within [-180, 180].
func ValidateLongitude(lon float64) error {
	if lon < -180 || lon > 180 {
		return New(ErrCodeInvalidCoordinate, "longitude must be in [-180, 180], got %g", lon)
	}
	return nil
}

// ValidatePhoto checks that an uploaded photo payload is usable.
// The core classifier assumes validated input; this runs at the boundary.
func ValidatePhoto(photo []byte) error {
	if len(photo) == 0 {
		return New(ErrCodeInvalidImage, "empty image file")
	}
	return nil
}

// ValidateFilename validates an uploaded filename for safety.
// It ensures the filename is a simple basename without path components,
// since the filename participates in verdict derivation and logging.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidImage, "filename cannot be empty")
	}

	if len(filename) > 256 {
		return New(ErrCodeInvalidImage, "filename too long (max 256 characters)")
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidImage, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidImage, "filename cannot contain path separators")
	}

	return nil
}

// ValidateOutputDir validates an artifact output directory path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output directory too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "output directory cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateQuestion checks a knowledge-base question for the API boundary.
// Questions must be between 3 and 1000 characters.
func ValidateQuestion(q string) error {
	if len(q) < 3 {
		return New(ErrCodeInvalidQuestion, "question too short (min 3 characters)")
	}
	if len(q) > 1000 {
		return New(ErrCodeInvalidQuestion, "question too long (max 1000 characters)")
	}
	return nil
}
