package samples

import (
	"strings"

	"github.com/nareshscaler/scaler/harness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	nugetSearchBox    = "#search"
	nugetSearchSubmit = "button.btn-search"
	nugetPackageName  = "Selenium.WebDriver"
)

// NuGetSearch searches the NuGet gallery for a package and follows the link to its page.
func NuGetSearch(baseURL string) harness.Scenario {
	return func(t *harness.T) {
		t.Navigate(strings.TrimSuffix(baseURL, "/") + "/")
		t.Fill(nugetSearchBox, nugetPackageName)
		t.Click(nugetSearchSubmit)
		t.Click("a.package-title:has-text('" + nugetPackageName + "')")

		url := t.Driver().URL()
		assert.Contains(t, strings.ToLower(url), "/packages/"+strings.ToLower(nugetPackageName))
	}
}

// PageTitle opens a page and checks that its title contains the expected text.
func PageTitle(url, want string) harness.Scenario {
	return func(t *harness.T) {
		t.Navigate(url)
		title := t.Title()
		t.Debug("page title is %q", title)
		require.Contains(t, title, want)
	}
}
