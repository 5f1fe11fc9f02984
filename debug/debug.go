//go:build !debug

package debug

// Debug is true when the binary is compiled with the debug tag. It keeps the
// global logger active under go test and enables verbose diagnostics.
const Debug = false
