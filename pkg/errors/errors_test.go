package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidCoordinate, "latitude out of range: %g", 99.5)

	if err.Code != ErrCodeInvalidCoordinate {
		t.Errorf("code = %s", err.Code)
	}
	if !strings.Contains(err.Error(), "INVALID_COORDINATE") {
		t.Errorf("message should carry the code: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "99.5") {
		t.Errorf("message should carry the formatted args: %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrCodeIO, cause, "write %s", "output/x.png")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("message should include the cause: %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidImage, "empty file")

	if !Is(err, ErrCodeInvalidImage) {
		t.Error("Is should match the error's code")
	}
	if Is(err, ErrCodeInvalidCoordinate) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInvalidImage) {
		t.Error("Is should not match unstructured errors")
	}

	// The code survives further wrapping.
	outer := fmt.Errorf("handler: %w", err)
	if !Is(outer, ErrCodeInvalidImage) {
		t.Error("Is should see through fmt.Errorf wrapping")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeReportNotFound, "x")); got != ErrCodeReportNotFound {
		t.Errorf("GetCode = %s", got)
	}
	if got := GetCode(fmt.Errorf("plain")); got != ErrCodeInternal {
		t.Errorf("GetCode(plain) = %s", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidCoordinate, 400},
		{ErrCodeInvalidImage, 400},
		{ErrCodeInvalidVerdict, 400},
		{ErrCodeInvalidQuestion, 400},
		{ErrCodeReportNotFound, 404},
		{ErrCodeTimeout, 504},
		{ErrCodeIO, 500},
		{ErrCodeInternal, 500},
		{ErrCodeUpstreamUnavailable, 500},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestValidateLatitude(t *testing.T) {
	tests := []struct {
		lat     float64
		wantErr bool
	}{
		{0, false},
		{-90, false},
		{90, false},
		{90.001, true},
		{-91, true},
	}
	for _, tt := range tests {
		err := ValidateLatitude(tt.lat)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLatitude(%g) error = %v", tt.lat, err)
		}
		if err != nil && !Is(err, ErrCodeInvalidCoordinate) {
			t.Errorf("ValidateLatitude(%g) code = %s", tt.lat, GetCode(err))
		}
	}
}

func TestValidateLongitude(t *testing.T) {
	tests := []struct {
		lon     float64
		wantErr bool
	}{
		{0, false},
		{-180, false},
		{180, false},
		{180.5, true},
		{-200, true},
	}
	for _, tt := range tests {
		err := ValidateLongitude(tt.lon)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLongitude(%g) error = %v", tt.lon, err)
		}
	}
}

func TestValidatePhoto(t *testing.T) {
	if err := ValidatePhoto(nil); !Is(err, ErrCodeInvalidImage) {
		t.Errorf("empty photo error = %v", err)
	}
	if err := ValidatePhoto([]byte{0xff, 0xd8}); err != nil {
		t.Errorf("non-empty photo error = %v", err)
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"valid", "field_burn_2024.jpg", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"control char", "bad\x00name.jpg", true},
		{"forward slash", "dir/file.jpg", true},
		{"backslash", "dir\\file.jpg", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputDir(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid", "output", false},
		{"nested", "output/run1", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"traversal", "../outside", true},
		{"embedded traversal", "output/../etc", true},
		{"null byte", "out\x00put", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputDir(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("code = %s", GetCode(err))
			}
		})
	}
}

func TestValidateQuestion(t *testing.T) {
	if err := ValidateQuestion("hi"); !Is(err, ErrCodeInvalidQuestion) {
		t.Errorf("short question error = %v", err)
	}
	if err := ValidateQuestion(strings.Repeat("q", 1001)); !Is(err, ErrCodeInvalidQuestion) {
		t.Errorf("long question error = %v", err)
	}
	if err := ValidateQuestion("What is the penalty?"); err != nil {
		t.Errorf("valid question error = %v", err)
	}
}
