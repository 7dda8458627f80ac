package platform

import (
	"fmt"
	"runtime"
)

// SupportedOS represents supported operating systems
type SupportedOS string

const (
	Linux   SupportedOS = "linux"
	Darwin  SupportedOS = "darwin"
	Windows SupportedOS = "windows"
)

// GetOS returns the current operating system
func GetOS() SupportedOS {
	return SupportedOS(runtime.GOOS)
}

// IsSupported returns true if the current OS has a native memory backend
func IsSupported() bool {
	os := GetOS()
	return os == Linux || os == Darwin || os == Windows
}

// ValidateSupport returns an error if the current OS has no native memory
// backend. Callers may keep running after this error: snapshots degrade to
// the zero snapshot and cache release always reports failure.
func ValidateSupport() error {
	if !IsSupported() {
		return fmt.Errorf("unsupported operating system: %s. Supported: linux, darwin, windows", runtime.GOOS)
	}
	return nil
}
