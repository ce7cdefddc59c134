package driver

import "time"

// Driver is one live browser instance. Implementations own an engine process that stays
// alive until Quit is called.
type Driver interface {
	Navigate(url string) error
	Click(selector string) error
	Fill(selector, value string) error
	Text(selector string) (string, error)
	Title() (string, error)
	URL() string

	// SetImplicitWait bounds how long element lookups wait for a selector to appear.
	SetImplicitWait(d time.Duration)

	// Screenshot returns a PNG image of the current viewport.
	Screenshot() ([]byte, error)

	// Quit terminates the engine. It is safe to call more than once.
	Quit() error
}

// Launcher starts engine instances using the automation binaries found in driverDir.
type Launcher interface {
	Launch(kind Kind, driverDir string) (Driver, error)
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(kind Kind, driverDir string) (Driver, error)

func (f LauncherFunc) Launch(kind Kind, driverDir string) (Driver, error) {
	return f(kind, driverDir)
}
