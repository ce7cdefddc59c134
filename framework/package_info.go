// Package framework contains the browser-independent test infrastructure used by the harness.
//
// There is a general notion of a test context which is similar to Go's *testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results, outside of the Go test runner. Each test gets its own capturing
// debug logger whose output is handed to the TestLogger when the test finishes.
//
// The browser-specific code that knows how to drive a backend builds its own scenario API
// on top of the test context.
package framework
