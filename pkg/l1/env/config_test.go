package env

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/jrk.go/pkg/target"
)

const testConfigFile = `
id = "arm"
poll_interval = "50ms"
mqtt_url = "mqtt://broker:1883/lab/"

[serial]
port = "/dev/ttyACM1"
baud = 115200
read_timeout = "500ms"

[calibration]
offset = 125
span = 270
min = 600
max = 3400
`

func writeConfig(t *testing.T, content string) string {
	fn := filepath.Join(t.TempDir(), "jrk.toml")
	require.NoError(t, os.WriteFile(fn, []byte(content), 0644))
	return fn
}

func TestLoadFile(t *testing.T) {
	conf := baseConfig
	require.NoError(t, conf.LoadFile(writeConfig(t, testConfigFile)))
	require.Equal(t, "arm", conf.ID)
	require.Equal(t, 50*time.Millisecond, conf.PollInterval)
	require.Equal(t, "mqtt://broker:1883/lab/", conf.MQTTBrokerURL)
	require.Equal(t, "/dev/ttyACM1", conf.Serial.PortName)
	require.Equal(t, 115200, conf.Serial.BaudRate)
	require.Equal(t, 500*time.Millisecond, conf.Serial.ReadTimeout)
	require.Equal(t, target.Calibration{Offset: 125, Span: 270, Min: 600, Max: 3400}, conf.Calibration)
	require.NoError(t, conf.Validate())
}

func TestLoadFileErrors(t *testing.T) {
	conf := baseConfig
	require.Error(t, conf.LoadFile(filepath.Join(t.TempDir(), "missing.toml")))
	require.Error(t, conf.LoadFile(writeConfig(t, "id = ")))
}

func TestLoadWithFlagsOverFile(t *testing.T) {
	flagged := baseConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	SetupFlagSet(fs, &flagged)
	require.NoError(t, fs.Parse([]string{"-baud", "57600", "-listen", ":8080"}))

	conf, err := LoadWith(writeConfig(t, testConfigFile), &flagged, fs)
	require.NoError(t, err)
	require.Equal(t, "arm", conf.ID)
	require.Equal(t, "/dev/ttyACM1", conf.Serial.PortName)
	require.Equal(t, 57600, conf.Serial.BaudRate)
	require.Equal(t, ":8080", conf.ListenAddr)
}

func TestLoadWithoutFile(t *testing.T) {
	flagged := baseConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	SetupFlagSet(fs, &flagged)
	require.NoError(t, fs.Parse([]string{"-id", "x", "-port", "COM3"}))

	conf, err := LoadWith("", &flagged, fs)
	require.NoError(t, err)
	require.Equal(t, "x", conf.ID)
	require.Equal(t, "COM3", conf.Serial.PortName)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"no id", func(c *Config) { c.ID = "" }},
		{"no port", func(c *Config) { c.Serial.PortName = "" }},
		{"bad baud", func(c *Config) { c.Serial.BaudRate = 0 }},
		{"bad poll", func(c *Config) { c.PollInterval = 0 }},
		{"bad calibration", func(c *Config) { c.Calibration.Span = 0 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := baseConfig
			conf.ID = "test"
			require.NoError(t, conf.Validate())
			tc.modify(&conf)
			require.Error(t, conf.Validate())
		})
	}
}

func TestInfo(t *testing.T) {
	conf := baseConfig
	conf.ID = "arm"
	info := conf.Info()
	require.Equal(t, "jrk/arm", info.Ref.Name())
	require.True(t, info.Ref.IsValid())
	require.Equal(t, conf.Serial.PortName, info.Meta.Labels["port"])
}
