package framework

import (
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Skipped returns the results of tests that were skipped after they started.
func (r Results) Skipped() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if t.Skipped {
			ret = append(ret, t)
		}
	}
	return ret
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Last returns the innermost name of the test, or "" for the root.
func (t TestID) Last() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}
