package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/nareshscaler/scaler/framework"
	"github.com/nareshscaler/scaler/harness"

	"github.com/alessio/shellescape"
)

const defaultBaseURL = "https://www.nuget.org"

type commandParams struct {
	baseURL    string
	configFile string
	install    bool
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	config     harness.Config
}

// Read parses the command line. Settings from a -config file are applied first, so flags that
// are given explicitly win over the file.
func (c *commandParams) Read(args []string) bool {
	defaults := harness.DefaultConfig()
	var timeout time.Duration
	var headful bool

	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.baseURL, "url", defaultBaseURL, "base URL of the site under test")
	fs.StringVar(&c.configFile, "config", "", "JSON file with harness settings")
	fs.BoolVar(&c.install, "install", false, "install the Playwright driver and browsers into the fallback directory, then exit")
	fs.Bool("chromium", defaults.ChromiumEnabled, "run tests in Chromium")
	fs.Bool("firefox", defaults.FirefoxEnabled, "run tests in Firefox")
	fs.Bool("webkit", defaults.WebKitEnabled, "run tests in WebKit")
	fs.Bool("logging", defaults.LoggingEnabled, "save screenshots of failures and write an HTML report")
	fs.String("log-dir", defaults.LogDirectory, "directory for screenshots and reports")
	fs.DurationVar(&timeout, "timeout", defaults.DefaultTimeout, "how long element lookups wait")
	fs.Bool("fail-on-error", defaults.FailOnCapturedError, "fail the test when a scenario failure is recorded")
	fs.String("start-dir", defaults.StartDirectory, "where to start searching for the Playwright driver")
	fs.String("driver-version", defaults.DriverVersion, "Playwright driver version to look for in the driver cache")
	fs.String("template", "", "HTML report template containing "+harness.ReportPlaceholder)
	fs.BoolVar(&headful, "headful", false, "show browser windows")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}

	c.config = defaults
	if c.configFile != "" {
		config, err := harness.LoadConfigFile(c.configFile, defaults)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
		c.config = config
	}

	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "chromium":
			c.config.ChromiumEnabled = value == "true"
		case "firefox":
			c.config.FirefoxEnabled = value == "true"
		case "webkit":
			c.config.WebKitEnabled = value == "true"
		case "logging":
			c.config.LoggingEnabled = value == "true"
		case "fail-on-error":
			c.config.FailOnCapturedError = value == "true"
		case "log-dir":
			c.config.LogDirectory = value
		case "start-dir":
			c.config.StartDirectory = value
		case "driver-version":
			c.config.DriverVersion = value
		case "template":
			c.config.ReportTemplate = value
		case "timeout":
			c.config.DefaultTimeout = timeout
		case "headful":
			c.config.Headless = !headful
		}
	})
	if err := c.config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a command line that runs only the given failed tests again with the
// same settings.
func rerunCommand(program string, c commandParams, failed []framework.TestResult) string {
	var b commandBuilder
	b.add(program, "-url", c.baseURL)
	if c.configFile != "" {
		b.add("-config", c.configFile)
	}
	b.add(
		"-logging="+boolString(c.config.LoggingEnabled),
		"-log-dir", c.config.LogDirectory,
		"-timeout", c.config.DefaultTimeout.String(),
		"-fail-on-error="+boolString(c.config.FailOnCapturedError),
	)
	for _, f := range failed {
		b.add("-run", testPattern(f.TestID))
	}
	return b.String()
}

// testPattern matches the test and each of its parents, since a parent that is filtered out
// never runs its subtests.
func testPattern(id framework.TestID) string {
	pattern := ""
	for i := len(id.Path) - 1; i >= 0; i-- {
		if pattern == "" {
			pattern = regexp.QuoteMeta(id.Path[i])
		} else {
			pattern = regexp.QuoteMeta(id.Path[i]) + "(/" + pattern + ")?"
		}
	}
	return "^" + pattern + "$"
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
