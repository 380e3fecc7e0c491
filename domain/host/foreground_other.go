//go:build !windows

package host

// ForegroundWindowTitle is unavailable off Windows.
func ForegroundWindowTitle() (string, error) {
	return "", ErrUnsupported
}
