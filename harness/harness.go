package harness

import (
	"errors"
	"fmt"
	"time"

	"github.com/nareshscaler/scaler/driver"
	"github.com/nareshscaler/scaler/framework"
)

// Harness runs scenarios against every enabled backend and turns the failures of a suite run
// into a report.
//
// The lifecycle is Setup, then any number of Run calls, then Teardown. Backends are run one
// at a time, each to completion, in the order given by driver.AllKinds.
type Harness struct {
	config   Config
	launcher driver.Launcher
	errorLog *ErrorLog
	recorder *Recorder
	template string
	logger   framework.Logger
	now      func() time.Time
}

// New checks the configuration and loads the report template. The launcher is used to start
// every engine instance.
func New(config Config, launcher driver.Launcher, logger framework.Logger) (*Harness, error) {
	if launcher == nil {
		return nil, errors.New("a browser launcher is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	template, err := LoadReportTemplate(config.ReportTemplate)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	errorLog := NewErrorLog()
	return &Harness{
		config:   config,
		launcher: launcher,
		errorLog: errorLog,
		recorder: NewRecorder(config, errorLog, logger),
		template: template,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (h *Harness) Config() Config {
	return h.config
}

func (h *Harness) ErrorLog() *ErrorLog {
	return h.errorLog
}

// Setup starts a new suite run with an empty error log.
func (h *Harness) Setup() {
	h.errorLog.Drain()
	var names []string
	for _, k := range h.config.EnabledKinds() {
		names = append(names, k.String())
	}
	h.logger.Printf("enabled browsers: %v; logging enabled: %t", names, h.config.LoggingEnabled)
}

// Run adds a test with the given name to c, with one subtest per backend. Disabled backends
// are reported as skipped.
//
// Launch failures always fail the subtest. A scenario failure fails it only if
// Config.FailOnCapturedError is set; otherwise it is just written to the debug output, and the
// error log still has its record.
func (h *Harness) Run(c *framework.Context, name string, scenario Scenario) {
	c.Run(name, func(c *framework.Context) {
		for _, kind := range driver.AllKinds() {
			kind := kind
			c.Run(kind.String(), func(c *framework.Context) {
				h.runBackend(c, kind, name, scenario)
			})
		}
	})
}

func (h *Harness) runBackend(c *framework.Context, kind driver.Kind, name string, scenario Scenario) {
	if !h.config.Enabled(kind) {
		c.SkipWithReason(fmt.Sprintf("%s is disabled", kind))
	}
	session := NewSession(SessionParams{
		Config:   h.config,
		Launcher: h.launcher,
		Resolver: driver.Resolver{},
		Recorder: h.recorder,
		Logger:   framework.Tee(c.DebugLogger(), framework.WithPrefix(h.logger, "["+c.ID().String()+"] ")),
		Backend:  kind,
		TestName: name,
	})
	err := session.Run(scenario)
	if err == nil {
		return
	}
	var scenarioErr *ScenarioError
	if errors.As(err, &scenarioErr) && !h.config.FailOnCapturedError {
		c.Debug("scenario failure was recorded but does not fail the test: %s", err)
		return
	}
	c.Errorf("%s", err)
}

// Teardown ends the suite run. If logging is enabled it writes the report for every failure
// recorded since Setup and returns its path; otherwise it returns "". The error log is empty
// afterward either way.
func (h *Harness) Teardown() (string, error) {
	records := h.errorLog.Drain()
	if !h.config.LoggingEnabled {
		return "", nil
	}
	content, err := RenderReport(records, h.template)
	if err != nil {
		return "", err
	}
	path, err := WriteReport(h.config.LogDirectory, content, h.now())
	if err != nil {
		return "", err
	}
	h.logger.Printf("wrote report with %d failure(s) to %s", len(records), path)
	return path, nil
}
