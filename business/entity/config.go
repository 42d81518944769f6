// Package entity provides entities for business logic.
package entity

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	CaptureFormatAuto = "auto"
	CaptureFormatHex  = "hex"
	CaptureFormatRaw  = "raw"
	CaptureFormatHDLC = "hdlc"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	DefaultConfigFileName = "shark.yaml"
	DefaultRootProtocol   = "thread/hdlc"
)

// SharkConfig application configuration
type SharkConfig struct {
	Logger     *LoggerConfig                     `yaml:"Logger"`
	Runtime    *RuntimeConfig                    `yaml:"Runtime"`
	Dissection *DissectionConfig                 `yaml:"Dissection"`
	Dissectors map[string]map[string]interface{} `yaml:"Dissectors,omitempty"`
	Capture    *CaptureConfig                    `yaml:"Capture"`
	Output     *OutputConfig                     `yaml:"Output"`
	Rest       *RestConfig                       `yaml:"Rest"`
	Ingest     *IngestConfig                     `yaml:"Ingest"`
	Profiler   *ProfilerConfig                   `yaml:"Profiler"`
}

// LoggerConfig logger settings
type LoggerConfig struct {
	Level             string `yaml:"level" default:"info"`
	TimeFieldFormat   string `yaml:"timeFieldFormat" default:"2006-01-02T15:04:05.000000"`
	PrettyPrint       *bool  `yaml:"prettyPrint" default:"true"`
	DisableSampling   *bool  `yaml:"disableSampling" default:"true"`
	RedirectStdLogger *bool  `yaml:"redirectStdLogger" default:"true"`
	ErrorStack        *bool  `yaml:"errorStack" default:"true"`
	ShowCaller        *bool  `yaml:"showCaller" default:"false"`
	FileName          string `yaml:"fileName,omitempty" default:""`
}

// RuntimeConfig runtime settings
type RuntimeConfig struct {
	GoMaxProcs int `yaml:"goMaxProcs" default:"0"`
}

// DissectionConfig engine settings
type DissectionConfig struct {
	RootProtocol string `yaml:"rootProtocol" default:"thread/hdlc"`
	Tolerant     *bool  `yaml:"tolerant" default:"false"`
	MaxDepth     int    `yaml:"maxDepth" default:"32"`
}

// CaptureConfig capture input settings
type CaptureConfig struct {
	Format       string `yaml:"format" default:"auto"`
	MaxFrameSize int    `yaml:"maxFrameSize" default:"65536"`
	MaxFileSize  int    `yaml:"maxFileSize" default:"67108864"`
}

// OutputConfig dissection output settings
type OutputConfig struct {
	Format       string `yaml:"format" default:"text"`
	Color        string `yaml:"color" default:"auto"`
	ShowWarnings *bool  `yaml:"showWarnings" default:"true"`
}

// RestConfig REST server configuration
type RestConfig struct {
	Enabled *bool  `yaml:"enabled" default:"true"`
	Host    string `yaml:"host" default:""`
	Port    int    `yaml:"port" default:"8877"`
}

// IngestConfig UDP ingest server configuration
type IngestConfig struct {
	Enabled   *bool  `yaml:"enabled" default:"false"`
	Host      string `yaml:"host" default:""`
	Port      int    `yaml:"port" default:"19777"`
	Multicore *bool  `yaml:"multicore" default:"true"`
}

// ProfilerConfig pprof configuration
type ProfilerConfig struct {
	Enabled *bool  `yaml:"enabled" default:"false"`
	Host    string `yaml:"host" default:"localhost"`
	Port    int    `yaml:"port" default:"8888"`
}

func (c *SharkConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dissection),
		validation.Field(&c.Capture),
		validation.Field(&c.Output),
		validation.Field(&c.Rest),
		validation.Field(&c.Ingest),
	)
}

func (c *DissectionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RootProtocol, validation.Required),
		validation.Field(&c.MaxDepth, validation.Required, validation.Min(1), validation.Max(1024)),
	)
}

// Clone returns a deep copy
func (c *DissectionConfig) Clone() *DissectionConfig {
	clone := *c
	if c.Tolerant != nil {
		tolerant := *c.Tolerant
		clone.Tolerant = &tolerant
	}
	return &clone
}

func (c *CaptureConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Format, validation.In(CaptureFormatAuto, CaptureFormatHex, CaptureFormatRaw, CaptureFormatHDLC)),
		validation.Field(&c.MaxFrameSize, validation.Min(1)),
		validation.Field(&c.MaxFileSize, validation.Min(1)),
	)
}

func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Format, validation.In(OutputFormatText, OutputFormatJSON, OutputFormatYAML)),
		validation.Field(&c.Color, validation.In(ColorAuto, ColorAlways, ColorNever)),
	)
}

func (c *RestConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Host, validation.When(c.Host != "", is.Host)),
		validation.Field(&c.Port, validation.Min(1), validation.Max(65535)),
	)
}

func (c *IngestConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Host, validation.When(c.Host != "", is.Host)),
		validation.Field(&c.Port, validation.Min(1), validation.Max(65535)),
	)
}

// DissectorOptions returns options configured for the dissector
func (c *SharkConfig) DissectorOptions(id string) map[string]interface{} {
	if c.Dissectors == nil {
		return nil
	}
	return c.Dissectors[id]
}
