//go:build debug

package debug

// Debug controls the verbosity of stack captures and test logging.
const Debug = true
