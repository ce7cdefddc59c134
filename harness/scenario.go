package harness

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/nareshscaler/scaler/driver"
	"github.com/nareshscaler/scaler/framework"

	"github.com/stretchr/testify/require"
)

// Scenario is the caller-supplied interaction that is run once against each enabled backend.
//
// A scenario fails if it calls Errorf or FailNow on its T (directly or through the assert and
// require packages), if one of T's browser helpers gets an error from the driver, or if it
// panics.
type Scenario func(t *T)

// T is a scenario's view of one live backend. It implements require.TestingT, so assertions
// can be made by passing the *T as if it were a *testing.T.
//
// Unlike framework.Context, failures reported through T do not go straight to the test
// results: the session first records evidence for them, and the harness then decides whether
// they fail the enclosing test.
type T struct {
	backend driver.Kind
	driver  driver.Driver
	logger  framework.Logger
	errors  []error
}

func newScenarioScope(backend driver.Kind, d driver.Driver, logger framework.Logger) *T {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &T{backend: backend, driver: d, logger: logger}
}

// Errorf is called by assertions to log a failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.errors = append(t.errors, framework.ReformatError(fmt.Errorf(format, args...)))
}

// FailNow is called by assertions when the scenario should stop immediately. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	panic(t)
}

// Backend returns the engine this scenario is running against.
func (t *T) Backend() driver.Kind {
	return t.backend
}

// Driver gives direct access to the live browser, for interactions that have no helper here.
func (t *T) Driver() driver.Driver {
	return t.driver
}

// Debug adds a message to the test's debug output.
func (t *T) Debug(format string, args ...interface{}) {
	t.logger.Printf(format, args...)
}

// Navigate opens the URL, failing the scenario immediately if that is not possible.
func (t *T) Navigate(url string) {
	t.Debug("navigating to %s", url)
	require.NoError(t, t.driver.Navigate(url))
}

// Click clicks the first element matching the selector, waiting for it up to the implicit wait.
func (t *T) Click(selector string) {
	require.NoError(t, t.driver.Click(selector))
}

// Fill replaces the contents of an input element.
func (t *T) Fill(selector, value string) {
	require.NoError(t, t.driver.Fill(selector, value))
}

// Text returns the text content of the first element matching the selector.
func (t *T) Text(selector string) string {
	text, err := t.driver.Text(selector)
	require.NoError(t, err)
	return text
}

// Title returns the title of the current page.
func (t *T) Title() string {
	title, err := t.driver.Title()
	require.NoError(t, err)
	return title
}

// run executes the scenario and returns the reason it failed, or nil.
func (t *T) run(scenario Scenario) (cause error) {
	defer func() {
		if r := recover(); r != nil {
			if r != t {
				t.errors = append(t.errors,
					fmt.Errorf("unexpected panic in scenario: %+v\n%s", r, string(debug.Stack())))
			} else if len(t.errors) == 0 {
				t.errors = append(t.errors, errors.New("scenario failed with no failure message"))
			}
		}
		cause = joinErrors(t.errors)
	}()

	scenario(t)
	return nil
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}
