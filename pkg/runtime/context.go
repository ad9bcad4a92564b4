package runtime

import "io"

// Context carries the ambient state execution needs but that closures
// don't: where Print writes to. It is intentionally minimal here;
// pkg/interpreter supplies the concrete implementation.
type Context interface {
	OutputStream() io.Writer
}
