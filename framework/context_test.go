package framework

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, "start "+id.String())
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String()+": "+strings.Split(err.Error(), "\n")[0])
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	r.events = append(r.events, fmt.Sprintf("finish %s failed=%t debug=%d", id, failed, len(debugOutput)))
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skip "+id.String()+" ("+reason+")")
}

func TestRunCollectsResults(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Debug("hello %d", 1)
		})
		c.Run("b", func(c *Context) {
			c.Errorf("bad %s", "thing")
		})
		c.Run("c", func(c *Context) {
			c.SkipWithReason("not today")
		})
	})

	assert.False(t, results.OK())
	assert.Len(t, results.Tests, 3)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "b", results.Failures[0].TestID.String())
	assert.Equal(t, []string{
		"start a",
		"finish a failed=false debug=1",
		"start b",
		"error b: bad thing",
		"finish b failed=true debug=0",
		"start c",
		"skip c (not today)",
	}, logger.events)
	require.Len(t, results.Skipped(), 1)
	assert.Equal(t, "c", results.Skipped()[0].TestID.Last())
}

func TestRequireFailureStopsTest(t *testing.T) {
	reached := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("outer", func(c *Context) {
			c.Run("inner", func(c *Context) {
				require.Equal(c, 1, 2)
				reached = true
			})
		})
	})
	assert.False(t, reached)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "outer/inner", results.Failures[0].TestID.String())
}

func TestPanicBecomesFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) { panic("oops") })
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: oops")
}

func TestFilterExcludesTests(t *testing.T) {
	var ran []string
	filter := func(id TestID) bool { return id.Last() != "skipme" }
	Run(filter, nil, func(c *Context) {
		c.Run("keep", func(c *Context) { ran = append(ran, c.ID().String()) })
		c.Run("skipme", func(c *Context) { ran = append(ran, c.ID().String()) })
	})
	assert.Equal(t, []string{"keep"}, ran)
}

func TestSiblingIDsDoNotShareStorage(t *testing.T) {
	var ids []TestID
	Run(nil, nil, func(c *Context) {
		c.Run("p", func(c *Context) {
			c.Run("one", func(c *Context) { ids = append(ids, c.ID()) })
			c.Run("two", func(c *Context) { ids = append(ids, c.ID()) })
		})
	})
	require.Len(t, ids, 2)
	assert.Equal(t, "p/one", ids[0].String())
	assert.Equal(t, "p/two", ids[1].String())
}

func TestReformatError(t *testing.T) {
	err := ReformatError(fmt.Errorf("\n\tError Trace:\tfile.go:1\n\tError:      \tNot equal  "))
	assert.Equal(t, "Error Trace:\tfile.go:1\nError:      \tNot equal", err.Error())
}
