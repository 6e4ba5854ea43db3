// Package platform maps the host operating system onto the keys used under
// installation.tree in the config document.
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Supported platform keys.
const (
	Windows = "windows"
	MacOS   = "macos"
	Linux   = "linux"
)

// ErrUnsupportedPlatform is returned when the host OS has no platform key.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// goosKeys maps runtime.GOOS values to config keys.
var goosKeys = map[string]string{
	"windows": Windows,
	"darwin":  MacOS,
	"linux":   Linux,
}

// Keys lists the supported platform keys in display order.
func Keys() []string {
	return []string{Windows, MacOS, Linux}
}

// Detect resolves the platform key of the running host.
func Detect() (string, error) {
	return Resolve(runtime.GOOS)
}

// Resolve maps a GOOS value to its platform key. Unknown systems are an
// error rather than being folded into another bucket.
func Resolve(goos string) (string, error) {
	key, ok := goosKeys[strings.ToLower(goos)]
	if !ok {
		return "", fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedPlatform, goos, strings.Join(Keys(), ", "))
	}
	return key, nil
}

// Validate checks a user-supplied platform key, as given through --os.
func Validate(key string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, known := range Keys() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedPlatform, key, strings.Join(Keys(), ", "))
}

// Title returns the display name used in the "Starting installation" banner.
func Title(key string) string {
	switch key {
	case MacOS:
		return "macOS"
	case Windows:
		return "Windows"
	case Linux:
		return "Linux"
	}
	return key
}
