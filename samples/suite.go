package samples

import (
	"strings"

	"github.com/nareshscaler/scaler/framework"
	"github.com/nareshscaler/scaler/harness"
)

// RunTestSuite runs the sample scenarios against baseURL with every backend the harness has
// enabled. It does not call Teardown.
func RunTestSuite(
	h *harness.Harness,
	baseURL string,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		h.Setup()

		h.Run(c, "home page title", PageTitle(strings.TrimSuffix(baseURL, "/")+"/", "NuGet"))
		h.Run(c, "package search", NuGetSearch(baseURL))
	})
}
