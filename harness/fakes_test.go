package harness

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nareshscaler/scaler/driver"

	"github.com/stretchr/testify/require"
)

var fakePNG = []byte("\x89PNG\r\n\x1a\nfake")

type fakeDriver struct {
	kind          driver.Kind
	dir           string
	implicitWait  time.Duration
	navigated     []string
	screenshotErr error
	quitCount     int
	lock          sync.Mutex
}

func (d *fakeDriver) Navigate(url string) error {
	d.navigated = append(d.navigated, url)
	return nil
}

func (d *fakeDriver) Click(selector string) error {
	if selector == "#missing" {
		return errors.New("element not found")
	}
	return nil
}

func (d *fakeDriver) Fill(selector, value string) error { return nil }

func (d *fakeDriver) Text(selector string) (string, error) { return "some text", nil }

func (d *fakeDriver) Title() (string, error) { return "Fake page", nil }

func (d *fakeDriver) URL() string {
	if len(d.navigated) == 0 {
		return "about:blank"
	}
	return d.navigated[len(d.navigated)-1]
}

func (d *fakeDriver) SetImplicitWait(t time.Duration) { d.implicitWait = t }

func (d *fakeDriver) Screenshot() ([]byte, error) {
	if d.screenshotErr != nil {
		return nil, d.screenshotErr
	}
	return screenshotOf(d.kind), nil
}

// screenshotOf is the image a fakeDriver of the given kind produces.
func screenshotOf(kind driver.Kind) []byte {
	return append(append([]byte(nil), fakePNG...), kind.String()...)
}

func (d *fakeDriver) Quit() error {
	d.lock.Lock()
	d.quitCount++
	d.lock.Unlock()
	return nil
}

// fakeLauncher fails for any driver directory listed in failDirs.
type fakeLauncher struct {
	failDirs      map[string]bool
	screenshotErr error
	launched      []*fakeDriver
	attempts      []string
}

func (l *fakeLauncher) Launch(kind driver.Kind, dir string) (driver.Driver, error) {
	l.attempts = append(l.attempts, dir)
	if l.failDirs[dir] {
		return nil, errors.New("cannot start engine in " + dir)
	}
	d := &fakeDriver{kind: kind, dir: dir, screenshotErr: l.screenshotErr}
	l.launched = append(l.launched, d)
	return d, nil
}

func (l *fakeLauncher) allQuit() bool {
	for _, d := range l.launched {
		if d.quitCount != 1 {
			return false
		}
	}
	return true
}

// driverTree creates <root>/ms-playwright-go/<version>, <root>/lib and <root>/work, and returns
// a configuration that starts its search in <root>/work.
func driverTree(t *testing.T, root string) Config {
	for _, d := range []string{
		filepath.Join(DefaultDriverCacheHint, DefaultDriverVersion),
		DefaultFallbackHint,
		"work",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
	c := DefaultConfig()
	c.StartDirectory = filepath.Join(root, "work")
	c.LogDirectory = filepath.Join(root, "logs")
	return c
}

func primaryDir(root string) string {
	return filepath.Join(root, DefaultDriverCacheHint, DefaultDriverVersion)
}

func fallbackDir(root string) string {
	return filepath.Join(root, DefaultFallbackHint)
}

var fixedTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }
