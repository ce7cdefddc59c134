package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nareshscaler/scaler/driver"
	"github.com/nareshscaler/scaler/framework"
	"github.com/nareshscaler/scaler/harness"
	"github.com/nareshscaler/scaler/samples"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}
	config := params.config

	if params.install {
		os.Exit(install(config))
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	launcher := driver.PlaywrightLauncher{Headless: config.Headless}
	h, err := harness.New(config, launcher, mainDebugLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Output:               os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := samples.RunTestSuite(h, params.baseURL, params.filters.AsFilter, testLogger)

	reportPath, err := h.Teardown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not write report: %s\n", err)
	}

	fmt.Println()
	printResults(results)
	if reportPath != "" {
		fmt.Printf("Report: %s\n", reportPath)
	}
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed tests again:")
		fmt.Printf("  %s\n", rerunCommand(os.Args[0], params, results.Failures))
		os.Exit(1)
	}
}

func printResults(results framework.Results) {
	if results.OK() {
		passedColor.Printf("All tests passed (%d tests, %d skipped)\n", len(results.Tests), len(results.Skipped()))
		return
	}
	failedColor.Printf("FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Printf("  * %s\n", f.TestID)
	}
}

// install puts the driver where the fallback search will find it: a directory named after the
// fallback hint, next to the start directory.
func install(config harness.Config) int {
	dir := filepath.Join(filepath.Dir(filepath.Clean(config.StartDirectory)), config.FallbackHint)
	if resolved, err := (driver.Resolver{}).Resolve(config.StartDirectory, config.FallbackHint); err == nil {
		dir = resolved
	}
	fmt.Printf("Installing Playwright into %s\n", dir)
	if err := driver.Install(dir, config.EnabledKinds(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
