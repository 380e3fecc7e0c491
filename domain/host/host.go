// Package host wraps the small set of OS window queries the app needs.
package host

import "errors"

// ErrUnsupported reports that foreground window queries are unavailable on
// this platform. The visibility watcher treats it as "always visible".
var ErrUnsupported = errors.New("host: foreground window query unsupported")
