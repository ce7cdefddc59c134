package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nareshscaler/scaler/driver"
	"github.com/nareshscaler/scaler/framework"
)

const (
	screenshotDirName = "screenshots"
	timestampLayout   = "200601021504"
)

// ErrorRecord is the evidence kept for one failed scenario run.
type ErrorRecord struct {
	Backend        driver.Kind
	TestName       string
	Description    string
	ScreenshotPath string
}

// Key identifies the record within an ErrorLog.
func (r ErrorRecord) Key() string {
	return r.Backend.String() + "_" + r.TestName
}

// ErrorLog accumulates the records of one suite run. It is safe for concurrent use. A record
// added under an existing key replaces the earlier one.
type ErrorLog struct {
	records map[string]ErrorRecord
	lock    sync.Mutex
}

func NewErrorLog() *ErrorLog {
	return &ErrorLog{records: make(map[string]ErrorRecord)}
}

func (l *ErrorLog) Add(r ErrorRecord) {
	l.lock.Lock()
	l.records[r.Key()] = r
	l.lock.Unlock()
}

func (l *ErrorLog) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return len(l.records)
}

// Records returns a copy of the records, ordered by key.
func (l *ErrorLog) Records() []ErrorRecord {
	l.lock.Lock()
	defer l.lock.Unlock()
	return sortedRecords(l.records)
}

// Drain returns the records ordered by key and empties the log.
func (l *ErrorLog) Drain() []ErrorRecord {
	l.lock.Lock()
	defer l.lock.Unlock()
	ret := sortedRecords(l.records)
	l.records = make(map[string]ErrorRecord)
	return ret
}

func sortedRecords(m map[string]ErrorRecord) []ErrorRecord {
	ret := make([]ErrorRecord, 0, len(m))
	for _, r := range m {
		ret = append(ret, r)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Key() < ret[j].Key() })
	return ret
}

// LiveSession is what the Recorder needs from a session whose scenario just failed.
type LiveSession interface {
	Backend() driver.Kind
	Screenshot() ([]byte, error)
}

// Recorder turns scenario failures into ErrorRecords with a screenshot of the page as it was
// when the failure happened.
type Recorder struct {
	config Config
	log    *ErrorLog
	logger framework.Logger
	now    func() time.Time
}

func NewRecorder(config Config, log *ErrorLog, logger framework.Logger) *Recorder {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Recorder{config: config, log: log, logger: logger, now: time.Now}
}

// Capture records the failure in the ErrorLog. If logging is disabled it does nothing and
// returns false.
//
// A screenshot that cannot be taken or saved does not prevent the record from being stored;
// the record then has no screenshot path.
func (r *Recorder) Capture(session LiveSession, testName string, cause error) (ErrorRecord, bool) {
	if !r.config.LoggingEnabled {
		return ErrorRecord{}, false
	}
	description := "unknown error"
	if cause != nil {
		description = cause.Error()
	}
	rec := ErrorRecord{
		Backend:     session.Backend(),
		TestName:    testName,
		Description: description,
	}

	path, err := r.saveScreenshot(session, rec)
	if err != nil {
		r.logger.Printf("%s", err)
	} else {
		rec.ScreenshotPath = path
	}

	r.log.Add(rec)
	r.logger.Printf("recorded failure of %q in %s", testName, rec.Backend)
	return rec, true
}

func (r *Recorder) saveScreenshot(session LiveSession, rec ErrorRecord) (string, error) {
	dir, err := filepath.Abs(filepath.Join(r.config.LogDirectory, screenshotDirName))
	if err != nil {
		return "", &CaptureError{Op: "locate screenshot directory", Err: err}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &CaptureError{Op: "create screenshot directory", Err: err}
	}

	image, err := session.Screenshot()
	if err != nil {
		return "", &CaptureError{Op: "take screenshot", Err: err}
	}

	path := filepath.Join(dir, screenshotFileName(rec, r.now()))
	if err := os.WriteFile(path, image, 0644); err != nil {
		return "", &CaptureError{Op: "save screenshot", Err: err}
	}
	return path, nil
}

// screenshotFileName is unique per backend and test, so runs of one scenario on different
// backends within the same minute keep their own images.
func screenshotFileName(rec ErrorRecord, t time.Time) string {
	return fmt.Sprintf("%s-%s.png", sanitizeFileName(rec.Key()), t.Format(timestampLayout))
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
