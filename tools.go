//go:build tools

package lamportsig

// Pins the code generator invoked by merkle.go's go:generate directive so
// `go mod tidy` doesn't drop it; this file never builds into the library.
import _ "github.com/alvaroloes/enumer"
