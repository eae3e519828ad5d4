// Package env provides the configuration shared by jrk binaries.
package env

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"

	"github.com/robotalks/jrk.go/pkg/l0/serial"
	"github.com/robotalks/jrk.go/pkg/l1"
	"github.com/robotalks/jrk.go/pkg/l1/servo"
	"github.com/robotalks/jrk.go/pkg/target"
)

// ControllerType is the type in ControllerRef.
const ControllerType = "jrk"

// Config provides common options of jrk binaries.
type Config struct {
	// ID identifies the jrk in MQTT topics.
	ID     string        `toml:"id"`
	Serial serial.Config `toml:"serial"`
	// PollInterval is how often the state is published.
	PollInterval time.Duration `toml:"poll_interval"`
	// MQTTBrokerURL specifies the MQTT broker to use, empty disables MQTT.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string `toml:"mqtt_url"`
	// ListenAddr is the websocket listen address, empty disables it.
	ListenAddr  string             `toml:"listen"`
	Calibration target.Calibration `toml:"calibration"`
}

var (
	defaultConfig = Config{
		Serial:        serial.DefaultConfig(),
		PollInterval:  servo.DefaultPollInterval,
		MQTTBrokerURL: "mqtt://localhost:1883/robo/",
		Calibration:   target.DefaultCalibration,
	}
	// baseConfig is defaultConfig before command line flags.
	baseConfig Config
	configFile string
)

func init() {
	if val := os.Getenv("JRK_PORT"); val != "" {
		defaultConfig.Serial.PortName = val
	}
	if val := os.Getenv("JRK_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.Serial.BaudRate = baud
		}
	}
	if val := os.Getenv("JRK_ID"); val != "" {
		defaultConfig.ID = val
	} else {
		defaultConfig.ID = MachineID()
	}
	if val, ok := os.LookupEnv("JRK_MQTT_URL"); ok {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("JRK_LISTEN"); val != "" {
		defaultConfig.ListenAddr = val
	}
	baseConfig = defaultConfig
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&configFile, "config", configFile, "TOML config file, command line flags take precedence.")
	SetupFlagSet(flag.CommandLine, &defaultConfig)
}

// SetupFlagSet binds the options of conf to fs.
func SetupFlagSet(fs *flag.FlagSet, conf *Config) {
	fs.StringVar(&conf.ID, "id", conf.ID, "Controller ID")
	fs.StringVar(&conf.Serial.PortName, "port", conf.Serial.PortName, "Serial port of the jrk")
	fs.IntVar(&conf.Serial.BaudRate, "baud", conf.Serial.BaudRate, "Serial baud rate")
	fs.DurationVar(&conf.Serial.ReadTimeout, "read-timeout", conf.Serial.ReadTimeout, "Serial read timeout")
	fs.DurationVar(&conf.PollInterval, "poll", conf.PollInterval, "State polling interval")
	fs.StringVar(&conf.MQTTBrokerURL, "mqtt", conf.MQTTBrokerURL, "MQTT broker URL")
	fs.StringVar(&conf.ListenAddr, "listen", conf.ListenAddr, "Websocket listen address")
}

// flagOverrides copies the option of a flag from src to dst.
var flagOverrides = map[string]func(dst, src *Config){
	"id":           func(dst, src *Config) { dst.ID = src.ID },
	"port":         func(dst, src *Config) { dst.Serial.PortName = src.Serial.PortName },
	"baud":         func(dst, src *Config) { dst.Serial.BaudRate = src.Serial.BaudRate },
	"read-timeout": func(dst, src *Config) { dst.Serial.ReadTimeout = src.Serial.ReadTimeout },
	"poll":         func(dst, src *Config) { dst.PollInterval = src.PollInterval },
	"mqtt":         func(dst, src *Config) { dst.MQTTBrokerURL = src.MQTTBrokerURL },
	"listen":       func(dst, src *Config) { dst.ListenAddr = src.ListenAddr },
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Load creates a Config from defaults, the -config file and
// command line flags, later ones take precedence.
func Load() (*Config, error) {
	return LoadWith(configFile, &defaultConfig, flag.CommandLine)
}

// MustLoad loads Config and fails on error.
func MustLoad() *Config {
	conf, err := Load()
	if err != nil {
		log.Fatalln(err)
	}
	return conf
}

// LoadWith loads fn over the defaults and re-applies the flags set in fs,
// whose values are in flagged.
func LoadWith(fn string, flagged *Config, fs *flag.FlagSet) (*Config, error) {
	if fn == "" {
		conf := *flagged
		return &conf, conf.Validate()
	}
	conf := baseConfig
	if err := conf.LoadFile(fn); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := flagOverrides[f.Name]; ok {
			apply(&conf, flagged)
		}
	})
	return &conf, conf.Validate()
}

// LoadFile decodes a TOML file over the current values.
func (c *Config) LoadFile(fn string) error {
	md, err := toml.DecodeFile(fn, c)
	if err != nil {
		return fmt.Errorf("config %s: %w", fn, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		glog.Warningf("config %s: unknown keys %v", fn, keys)
	}
	return nil
}

// Validate checks the options.
func (c *Config) Validate() error {
	if c.ID == "" {
		return errors.New("controller id must be specified")
	}
	if c.Serial.PortName == "" {
		return errors.New("serial port must be specified")
	}
	if c.Serial.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.Serial.BaudRate)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("invalid poll interval %v", c.PollInterval)
	}
	return c.Calibration.Validate()
}

// Info returns the ControllerInfo published for the jrk.
func (c *Config) Info() l1.ControllerInfo {
	return l1.ControllerInfo{
		Ref: l1.ControllerRef{Type: ControllerType, ID: c.ID},
		Meta: l1.ControllerMeta{
			Description: "Pololu jrk motor controller",
			Labels:      map[string]string{"port": c.Serial.PortName},
		},
	}
}

// OpenServo opens the serial port and creates a Servo on it.
func (c *Config) OpenServo() (*servo.Servo, *serial.Port, error) {
	port, err := c.Serial.Open()
	if err != nil {
		return nil, nil, err
	}
	s := servo.New(port)
	s.Calibration = c.Calibration
	return s, port, nil
}
