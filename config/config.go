// Package config loads the converter's TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"base64_converter/encoding"
	"base64_converter/export"
)

const (
	DefaultListenAddr     = ":6688"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultMaxBatchItems  = 500
	DefaultMaxUploadBytes = 10 << 20
)

type ExportConfig struct {
	TextName  string `toml:"text_name"`
	BatchName string `toml:"batch_name"`
	FileName  string `toml:"file_name"`
}

type Config struct {
	Path string `toml:"-"`

	ListenAddr     string       `toml:"listen_addr"`
	LogLevel       string       `toml:"log_level"`
	LogFormat      string       `toml:"log_format"`
	LineLength     int          `toml:"line_length"`
	MaxBatchItems  int          `toml:"max_batch_items"`
	MaxUploadBytes int64        `toml:"max_upload_bytes"`
	Export         ExportConfig `toml:"export"`
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.LineLength == 0 {
		c.LineLength = encoding.DefaultLineLength
	}
	if c.MaxBatchItems == 0 {
		c.MaxBatchItems = DefaultMaxBatchItems
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.Export.TextName == "" {
		c.Export.TextName = export.DefaultTextName
	}
	if c.Export.BatchName == "" {
		c.Export.BatchName = export.DefaultBatchName
	}
	if c.Export.FileName == "" {
		c.Export.FileName = encoding.DefaultFileName
	}
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format: must be text or json, got %q", c.LogFormat))
	}
	if c.LineLength < 0 {
		errs = append(errs, fmt.Errorf("line_length: must not be negative, got %d", c.LineLength))
	}
	if c.MaxBatchItems < 0 {
		errs = append(errs, fmt.Errorf("max_batch_items: must not be negative, got %d", c.MaxBatchItems))
	}
	if c.MaxUploadBytes < 0 {
		errs = append(errs, fmt.Errorf("max_upload_bytes: must not be negative, got %d", c.MaxUploadBytes))
	}
	if err := export.ValidateTemplate(c.Export.TextName); err != nil {
		errs = append(errs, fmt.Errorf("export.text_name: %w", err))
	}
	if err := export.ValidateTemplate(c.Export.BatchName); err != nil {
		errs = append(errs, fmt.Errorf("export.batch_name: %w", err))
	}
	if strings.ContainsAny(c.Export.FileName, `/\`) {
		errs = append(errs, fmt.Errorf("export.file_name: must not contain path separators"))
	}
	return errors.Join(errs...)
}

// Parse reads a TOML document. Unknown keys are an error.
func Parse(content []byte) (*Config, error) {
	c := &Config{}
	if err := toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields().Decode(c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the config at path. An empty path or a missing file gives the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.WithField("path", path).Warn("Config file not found, using defaults")
			c := Default()
			c.Path = path
			return c, nil
		}
		return nil, err
	}
	c, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("error loading config %s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// ConfigureLogging applies the log level and format to the standard logrus
// logger.
func (c *Config) ConfigureLogging() error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func (c *Config) Namer() export.Namer {
	return export.Namer{
		TextTemplate:  c.Export.TextName,
		BatchTemplate: c.Export.BatchName,
	}
}

func (c *Config) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"path":            c.Path,
		"listen_addr":     c.ListenAddr,
		"line_length":     c.LineLength,
		"max_batch_items": c.MaxBatchItems,
	}
}
