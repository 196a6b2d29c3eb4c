package stream

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the runtime configuration, read from YAML.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientId"`
		Username string `yaml:"username"`
		Password string `yaml:"password" json:"-"`
		Topics   struct {
			Stream   string `yaml:"stream"`
			Snapshot string `yaml:"snapshot"`
			Command  string `yaml:"command"`
			Control  string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`

	Layers    int     `yaml:"layers"`
	FrameRate float64 `yaml:"frameRate"`
	HTTPAddr  string  `yaml:"httpAddr"`
	Static    string  `yaml:"static"`
	Program   string  `yaml:"program"`
	LogLevel  string  `yaml:"logLevel"`

	Preview struct {
		Pixels int     `yaml:"pixels"`
		Width  float64 `yaml:"width"`
	} `yaml:"preview"`
}

// LoadConfig reads a YAML config file and fills in defaults.
func LoadConfig(path string) (Config, error) {
	var c Config
	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil {
		return c, err
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "layertx"
	}
	if c.Layers <= 0 {
		c.Layers = 8
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":3000"
	}
	if c.Static == "" {
		c.Static = "client/dist"
	}
	if c.Preview.Pixels <= 0 {
		c.Preview.Pixels = defaultPixels
	}
	if c.Preview.Width <= 0 {
		c.Preview.Width = 1280
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
