package harness

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nareshscaler/scaler/driver"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	DefaultTimeout         = time.Second * 10
	DefaultLogDirectory    = "logs"
	DefaultDriverCacheHint = "ms-playwright-go"
	DefaultDriverVersion   = "1.52.0"
	DefaultFallbackHint    = "lib"
)

// Config holds every setting the harness needs. It is resolved once, before the first session
// starts, and is not changed during a run.
type Config struct {
	ChromiumEnabled bool
	FirefoxEnabled  bool
	WebKitEnabled   bool

	// LoggingEnabled turns on screenshot capture and the HTML report.
	LoggingEnabled bool
	LogDirectory   string

	// DefaultTimeout is the implicit wait applied to element lookups.
	DefaultTimeout time.Duration

	// FailOnCapturedError decides whether a recorded scenario failure also fails the test. If
	// false, the failure only appears in the error log and the report.
	FailOnCapturedError bool

	// StartDirectory is where the search for driver binaries begins.
	StartDirectory  string
	DriverCacheHint string
	DriverVersion   string
	FallbackHint    string

	Headless bool

	// ReportTemplate is the path of an HTML template; the built-in template is used if empty.
	ReportTemplate string
}

func DefaultConfig() Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return Config{
		ChromiumEnabled:     true,
		FirefoxEnabled:      true,
		WebKitEnabled:       true,
		LoggingEnabled:      false,
		LogDirectory:        DefaultLogDirectory,
		DefaultTimeout:      DefaultTimeout,
		FailOnCapturedError: true,
		StartDirectory:      wd,
		DriverCacheHint:     DefaultDriverCacheHint,
		DriverVersion:       DefaultDriverVersion,
		FallbackHint:        DefaultFallbackHint,
		Headless:            true,
	}
}

// Enabled reports whether the given engine should be run.
func (c Config) Enabled(kind driver.Kind) bool {
	switch kind {
	case driver.Chromium:
		return c.ChromiumEnabled
	case driver.Firefox:
		return c.FirefoxEnabled
	case driver.WebKit:
		return c.WebKitEnabled
	default:
		return false
	}
}

func (c Config) EnabledKinds() []driver.Kind {
	var ret []driver.Kind
	for _, k := range driver.AllKinds() {
		if c.Enabled(k) {
			ret = append(ret, k)
		}
	}
	return ret
}

func (c Config) Validate() error {
	if c.DefaultTimeout <= 0 {
		return fmt.Errorf("default timeout must be positive, got %s", c.DefaultTimeout)
	}
	if c.LoggingEnabled && c.LogDirectory == "" {
		return errors.New("a log directory is required when logging is enabled")
	}
	if c.DriverCacheHint == "" || c.FallbackHint == "" {
		return errors.New("driver directory hints must not be empty")
	}
	return nil
}

type configFile struct {
	ChromiumEnabled     *bool                  `json:"chromiumEnabled"`
	FirefoxEnabled      *bool                  `json:"firefoxEnabled"`
	WebKitEnabled       *bool                  `json:"webkitEnabled"`
	LoggingEnabled      *bool                  `json:"loggingEnabled"`
	FailOnCapturedError *bool                  `json:"failOnCapturedError"`
	Headless            *bool                  `json:"headless"`
	LogDirectory        ldvalue.OptionalString `json:"logDirectory"`
	DefaultTimeoutMS    ldvalue.OptionalInt    `json:"defaultTimeoutMs"`
	StartDirectory      ldvalue.OptionalString `json:"startDirectory"`
	DriverCacheHint     ldvalue.OptionalString `json:"driverCacheHint"`
	DriverVersion       ldvalue.OptionalString `json:"driverVersion"`
	FallbackHint        ldvalue.OptionalString `json:"fallbackHint"`
	ReportTemplate      ldvalue.OptionalString `json:"reportTemplate"`
}

// LoadConfigFile reads a JSON settings file. Properties that are absent keep the values they
// have in base.
func LoadConfigFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	var f configFile
	if err := json.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("malformed configuration file %s: %w", path, err)
	}

	c := base
	setBool(&c.ChromiumEnabled, f.ChromiumEnabled)
	setBool(&c.FirefoxEnabled, f.FirefoxEnabled)
	setBool(&c.WebKitEnabled, f.WebKitEnabled)
	setBool(&c.LoggingEnabled, f.LoggingEnabled)
	setBool(&c.FailOnCapturedError, f.FailOnCapturedError)
	setBool(&c.Headless, f.Headless)
	setString(&c.LogDirectory, f.LogDirectory)
	setString(&c.StartDirectory, f.StartDirectory)
	setString(&c.DriverCacheHint, f.DriverCacheHint)
	setString(&c.DriverVersion, f.DriverVersion)
	setString(&c.FallbackHint, f.FallbackHint)
	setString(&c.ReportTemplate, f.ReportTemplate)
	if f.DefaultTimeoutMS.IsDefined() {
		c.DefaultTimeout = time.Duration(f.DefaultTimeoutMS.IntValue()) * time.Millisecond
	}
	return c, nil
}

func setBool(dest *bool, value *bool) {
	if value != nil {
		*dest = *value
	}
}

func setString(dest *string, value ldvalue.OptionalString) {
	if value.IsDefined() {
		*dest = value.StringValue()
	}
}
