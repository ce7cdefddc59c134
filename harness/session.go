package harness

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nareshscaler/scaler/driver"
	"github.com/nareshscaler/scaler/framework"
)

// State is a step in the lifecycle of a Session.
type State int

const (
	Unstarted State = iota
	Acquired
	Configured
	Running
	Succeeded
	Failed
	Closed
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Acquired:
		return "acquired"
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SessionParams are the collaborators of one backend attempt.
type SessionParams struct {
	Config   Config
	Launcher driver.Launcher
	Resolver driver.Resolver
	// Recorder captures evidence for scenario failures; failures are not recorded if nil.
	Recorder *Recorder
	Logger   framework.Logger
	Backend  driver.Kind
	TestName string
}

// Session owns one engine instance for the duration of a single scenario run. A Session is
// used only once.
type Session struct {
	params  SessionParams
	logger  framework.Logger
	driver  driver.Driver
	history []State
}

func NewSession(params SessionParams) *Session {
	logger := params.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Session{params: params, logger: logger, history: []State{Unstarted}}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.history[len(s.history)-1]
}

// History returns every state the session has been in, in order.
func (s *Session) History() []State {
	return append([]State(nil), s.history...)
}

// Outcome returns Succeeded or Failed once the scenario has run, or Unstarted if it never ran.
func (s *Session) Outcome() State {
	for _, st := range s.history {
		if st == Succeeded || st == Failed {
			return st
		}
	}
	return Unstarted
}

func (s *Session) Backend() driver.Kind {
	return s.params.Backend
}

func (s *Session) TestName() string {
	return s.params.TestName
}

// Screenshot asks the live engine for an image of the current page.
func (s *Session) Screenshot() ([]byte, error) {
	if s.driver == nil || s.State() == Closed {
		return nil, errors.New("session has no live browser")
	}
	return s.driver.Screenshot()
}

func (s *Session) transition(to State) {
	s.history = append(s.history, to)
}

// Run starts the engine, runs the scenario and always terminates the engine again.
//
// It returns nil without starting anything if the backend is disabled. It returns a
// *LaunchError if no engine could be started, and a *ScenarioError if the scenario failed; in
// the latter case the failure has already been handed to the Recorder while the engine was
// still alive.
func (s *Session) Run(scenario Scenario) error {
	if !s.params.Config.Enabled(s.params.Backend) {
		s.logger.Printf("%s is disabled; skipping", s.params.Backend)
		return nil
	}
	if s.State() != Unstarted {
		return fmt.Errorf("session for %s has already been used", s.params.Backend)
	}

	d, err := s.acquire()
	if err != nil {
		s.transition(Closed)
		return err
	}
	s.driver = d
	s.transition(Acquired)
	defer s.release()

	d.SetImplicitWait(s.params.Config.DefaultTimeout)
	s.transition(Configured)

	s.transition(Running)
	cause := newScenarioScope(s.params.Backend, d, s.logger).run(scenario)
	if cause == nil {
		s.transition(Succeeded)
		return nil
	}
	s.transition(Failed)
	s.capture(cause)
	return &ScenarioError{Backend: s.params.Backend, TestName: s.params.TestName, Cause: cause}
}

func (s *Session) acquire() (driver.Driver, error) {
	d, primaryErr := s.launchFrom(s.params.Config.DriverCacheHint, s.params.Config.DriverVersion)
	if primaryErr == nil {
		return d, nil
	}
	s.logger.Printf("could not start %s from primary location (%s), trying fallback", s.params.Backend, primaryErr)

	d, fallbackErr := s.launchFrom(s.params.Config.FallbackHint, "")
	if fallbackErr == nil {
		return d, nil
	}
	return nil, &LaunchError{Backend: s.params.Backend, Primary: primaryErr, Fallback: fallbackErr}
}

func (s *Session) launchFrom(hint, subdir string) (driver.Driver, error) {
	dir, err := s.params.Resolver.Resolve(s.params.Config.StartDirectory, hint)
	if err != nil {
		return nil, err
	}
	if subdir != "" {
		dir = filepath.Join(dir, subdir)
	}
	s.logger.Printf("starting %s with driver directory %s", s.params.Backend, dir)
	d, err := s.params.Launcher.Launch(s.params.Backend, dir)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("launcher returned no browser for %s", s.params.Backend)
	}
	return d, nil
}

// capture records the failure. Problems while recording are logged and never replace the
// scenario's own error.
func (s *Session) capture(cause error) {
	if s.params.Recorder == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("%s", &CaptureError{Op: "record failure", Err: fmt.Errorf("panic: %v", r)})
		}
	}()
	s.params.Recorder.Capture(s, s.params.TestName, cause)
}

func (s *Session) release() {
	if err := s.driver.Quit(); err != nil {
		s.logger.Printf("error while closing %s: %s", s.params.Backend, err)
	}
	s.transition(Closed)
}
