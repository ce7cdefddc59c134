package harness

import (
	"testing"
	"time"

	helpers "github.com/launchdarkly/go-test-helpers/v3"
	"github.com/nareshscaler/scaler/driver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, []driver.Kind{driver.Chromium, driver.Firefox, driver.WebKit}, c.EnabledKinds())
	assert.False(t, c.LoggingEnabled)
	assert.True(t, c.FailOnCapturedError)
	assert.Equal(t, 10*time.Second, c.DefaultTimeout)
	assert.NotEmpty(t, c.StartDirectory)
	assert.NoError(t, c.Validate())
}

func TestConfigEnabled(t *testing.T) {
	c := DefaultConfig()
	c.ChromiumEnabled = false
	assert.False(t, c.Enabled(driver.Chromium))
	assert.True(t, c.Enabled(driver.Firefox))
	assert.False(t, c.Enabled(driver.Kind(42)))
	assert.Equal(t, []driver.Kind{driver.Firefox, driver.WebKit}, c.EnabledKinds())
}

func TestConfigValidate(t *testing.T) {
	c := DefaultConfig()
	c.LoggingEnabled = true
	c.LogDirectory = ""
	assert.Error(t, c.Validate())

	c = DefaultConfig()
	c.FallbackHint = ""
	assert.Error(t, c.Validate())
}

func TestLoadConfigFileOverlaysDefinedProperties(t *testing.T) {
	data := []byte(`{
		"firefoxEnabled": false,
		"loggingEnabled": true,
		"logDirectory": "/var/log/ui-tests",
		"defaultTimeoutMs": 2500,
		"failOnCapturedError": false
	}`)
	helpers.WithTempFileData(data, func(path string) {
		base := DefaultConfig()
		c, err := LoadConfigFile(path, base)
		require.NoError(t, err)

		assert.True(t, c.ChromiumEnabled)
		assert.False(t, c.FirefoxEnabled)
		assert.True(t, c.LoggingEnabled)
		assert.False(t, c.FailOnCapturedError)
		assert.Equal(t, "/var/log/ui-tests", c.LogDirectory)
		assert.Equal(t, 2500*time.Millisecond, c.DefaultTimeout)
		assert.Equal(t, base.DriverCacheHint, c.DriverCacheHint)
		assert.Equal(t, base.StartDirectory, c.StartDirectory)
	})
}

func TestLoadConfigFileErrors(t *testing.T) {
	helpers.WithTempFileData([]byte(`{"defaultTimeoutMs": "soon"`), func(path string) {
		_, err := LoadConfigFile(path, DefaultConfig())
		assert.Error(t, err)
	})
	_, err := LoadConfigFile("/no/such/file.json", DefaultConfig())
	assert.Error(t, err)
}
