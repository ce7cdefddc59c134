package driver

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightLauncher starts engines through a Playwright driver installed in the directory
// passed to Launch. Browsers are never downloaded on demand; use Install for that.
type PlaywrightLauncher struct {
	Headless bool
	// Output receives the driver's own console output; it is discarded if nil.
	Output io.Writer
}

func (l PlaywrightLauncher) runOptions(driverDir string) *playwright.RunOptions {
	out := l.Output
	if out == nil {
		out = io.Discard
	}
	return &playwright.RunOptions{
		DriverDirectory:     driverDir,
		SkipInstallBrowsers: true,
		Verbose:             false,
		Stdout:              out,
		Stderr:              out,
	}
}

func (l PlaywrightLauncher) Launch(kind Kind, driverDir string) (Driver, error) {
	pw, err := playwright.Run(l.runOptions(driverDir))
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright from %s: %w", driverDir, err)
	}

	browserType, err := browserTypeFor(pw, kind)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}
	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", kind, err)
	}
	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page in %s: %w", kind, err)
	}

	return &playwrightDriver{pw: pw, browser: browser, page: page}, nil
}

func browserTypeFor(pw *playwright.Playwright, kind Kind) (playwright.BrowserType, error) {
	switch kind {
	case Chromium:
		return pw.Chromium, nil
	case Firefox:
		return pw.Firefox, nil
	case WebKit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser engine %s", kind)
	}
}

// Install downloads the Playwright driver into driverDir together with the browsers for the
// given engines.
func Install(driverDir string, kinds []Kind, output io.Writer) error {
	if output == nil {
		output = io.Discard
	}
	var browsers []string
	for _, k := range kinds {
		browsers = append(browsers, k.String())
	}
	err := playwright.Install(&playwright.RunOptions{
		DriverDirectory: driverDir,
		Browsers:        browsers,
		Verbose:         true,
		Stdout:          output,
		Stderr:          output,
	})
	if err != nil {
		return fmt.Errorf("failed to install playwright into %s: %w", driverDir, err)
	}
	return nil
}

type playwrightDriver struct {
	pw       *playwright.Playwright
	browser  playwright.Browser
	page     playwright.Page
	quitOnce sync.Once
	quitErr  error
}

func (d *playwrightDriver) Navigate(url string) error {
	if _, err := d.page.Goto(url); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

func (d *playwrightDriver) Click(selector string) error {
	if err := d.page.Locator(selector).Click(); err != nil {
		return fmt.Errorf("click on %q failed: %w", selector, err)
	}
	return nil
}

func (d *playwrightDriver) Fill(selector, value string) error {
	if err := d.page.Locator(selector).Fill(value); err != nil {
		return fmt.Errorf("fill of %q failed: %w", selector, err)
	}
	return nil
}

func (d *playwrightDriver) Text(selector string) (string, error) {
	text, err := d.page.Locator(selector).TextContent()
	if err != nil {
		return "", fmt.Errorf("reading text of %q failed: %w", selector, err)
	}
	return text, nil
}

func (d *playwrightDriver) Title() (string, error) {
	return d.page.Title()
}

func (d *playwrightDriver) URL() string {
	return d.page.URL()
}

func (d *playwrightDriver) SetImplicitWait(timeout time.Duration) {
	d.page.SetDefaultTimeout(float64(timeout.Milliseconds()))
}

func (d *playwrightDriver) Screenshot() ([]byte, error) {
	return d.page.Screenshot()
}

// Quit closes the browser and stops the driver process. Both are attempted even if the first
// fails; the first error is returned.
func (d *playwrightDriver) Quit() error {
	d.quitOnce.Do(func() {
		if err := d.browser.Close(); err != nil {
			d.quitErr = fmt.Errorf("failed to close browser: %w", err)
		}
		if err := d.pw.Stop(); err != nil && d.quitErr == nil {
			d.quitErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
	})
	return d.quitErr
}
