package harness

import (
	"errors"
	"fmt"

	"github.com/nareshscaler/scaler/driver"
)

// ErrLaunchFailure is matched by every LaunchError.
var ErrLaunchFailure = errors.New("browser engine could not be launched")

// LaunchError means that neither the primary nor the fallback driver location produced a running
// engine. It is fatal for one backend attempt only.
type LaunchError struct {
	Backend  driver.Kind
	Primary  error
	Fallback error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("could not launch %s (primary location: %s; fallback location: %s)",
		e.Backend, e.Primary, e.Fallback)
}

func (e *LaunchError) Is(target error) bool {
	return target == ErrLaunchFailure
}

func (e *LaunchError) Unwrap() error {
	return e.Fallback
}

// ScenarioError carries whatever made a scenario fail: a returned assertion failure, a driver
// error or a panic.
type ScenarioError struct {
	Backend  driver.Kind
	TestName string
	Cause    error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("scenario %q failed in %s: %s", e.TestName, e.Backend, e.Cause)
}

func (e *ScenarioError) Unwrap() error {
	return e.Cause
}

// CaptureError is a failure while recording evidence for a scenario failure. It is only ever
// logged.
type CaptureError struct {
	Op  string
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}
