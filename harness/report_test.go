package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	helpers "github.com/launchdarkly/go-test-helpers/v3"
	"github.com/nareshscaler/scaler/driver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoRecords = []ErrorRecord{
	{Backend: driver.Chromium, TestName: "testLogin", Description: "element not found", ScreenshotPath: "/logs/screenshots/testLogin-202603141509.png"},
	{Backend: driver.Firefox, TestName: "testSearch", Description: "timeout", ScreenshotPath: "/logs/screenshots/testSearch-202603141509.png"},
}

func TestFormatRowColumnOrder(t *testing.T) {
	row := FormatRow(twoRecords[0])
	assert.Equal(t,
		`<tr><td>chromium</td><td>testLogin</td><td class="description">element not found</td>`+
			`<td><a href="/logs/screenshots/testLogin-202603141509.png">testLogin-202603141509.png</a></td></tr>`+"\n",
		row)
}

func TestFormatRowEscapesHTML(t *testing.T) {
	row := FormatRow(ErrorRecord{Backend: driver.WebKit, TestName: "a<b>", Description: `expected "x" & got <nil>`})
	assert.Contains(t, row, "a&lt;b&gt;")
	assert.Contains(t, row, "expected &#34;x&#34; &amp; got &lt;nil&gt;")
	assert.True(t, strings.HasSuffix(row, "<td></td></tr>\n"))
}

func TestRenderReportWithTwoErrors(t *testing.T) {
	out, err := RenderReport(twoRecords, DefaultReportTemplate)
	require.NoError(t, err)

	assert.NotContains(t, out, ReportPlaceholder)
	assert.Equal(t, 2, strings.Count(out, `<td class="description">`))
	assert.Contains(t, out, "<td>chromium</td><td>testLogin</td><td class=\"description\">element not found</td>")
	assert.Contains(t, out, "<td>firefox</td><td>testSearch</td><td class=\"description\">timeout</td>")
	assert.Contains(t, out, `href="/logs/screenshots/testLogin-202603141509.png"`)
	assert.Contains(t, out, `href="/logs/screenshots/testSearch-202603141509.png"`)
}

func TestRenderReportIsIdempotent(t *testing.T) {
	log := NewErrorLog()
	for _, r := range twoRecords {
		log.Add(r)
	}
	first, err := RenderReport(log.Records(), DefaultReportTemplate)
	require.NoError(t, err)
	second, err := RenderReport(log.Records(), DefaultReportTemplate)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderReportSubstitutesOnlyThePlaceholder(t *testing.T) {
	out, err := RenderReport(nil, "<table>"+ReportPlaceholder+"</table>")
	require.NoError(t, err)
	assert.Equal(t, "<table></table>", out)

	_, err = RenderReport(twoRecords, "<html>no marker</html>")
	assert.Error(t, err)
}

func TestWriteReportFileName(t *testing.T) {
	helpers.WithTempDir(func(root string) {
		dir := filepath.Join(root, "logs")
		path, err := WriteReport(dir, "<html></html>", fixedTime)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "build-report-202603141509.html"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", string(data))
	})
}

func TestLoadReportTemplate(t *testing.T) {
	template, err := LoadReportTemplate("")
	require.NoError(t, err)
	assert.Equal(t, DefaultReportTemplate, template)
	assert.Contains(t, DefaultReportTemplate, ReportPlaceholder)

	helpers.WithTempFileData([]byte("<p>"+ReportPlaceholder+"</p>"), func(path string) {
		template, err := LoadReportTemplate(path)
		require.NoError(t, err)
		assert.Equal(t, "<p>"+ReportPlaceholder+"</p>", template)
	})

	helpers.WithTempFileData([]byte("<p></p>"), func(path string) {
		_, err := LoadReportTemplate(path)
		assert.Error(t, err)
	})
}
