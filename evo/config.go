package evo

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Config stores the parameters of an evolution run.
type Config struct {
	Genome     GenomeConfig
	Population PopulationConfig
	Run        RunConfig
}

// GenomeConfig holds the shape shared by every genome.
type GenomeConfig struct {
	NumInputs     int `ini:"num_inputs"`
	NumLayers     int `ini:"num_layers"`
	NumOutputs    int `ini:"num_outputs"`
	SublayerWidth int `ini:"sublayer_width"`
}

// PopulationConfig holds population sizing and the random seed.
type PopulationConfig struct {
	PopSize    int   `ini:"pop_size"`    // default 100
	MaxSpecies int   `ini:"max_species"` // default 20
	Seed       int64 `ini:"seed"`        // 0 means seed from the clock
}

// RunConfig holds harness settings; the evolution core does not read them.
type RunConfig struct {
	Generations        int    `ini:"generations"`
	ReportInterval     int    `ini:"report_interval"`     // default 4
	CheckpointInterval int    `ini:"checkpoint_interval"` // 0 disables periodic checkpoints
	CheckpointPrefix   string `ini:"checkpoint_prefix"`
	Workers            int    `ini:"workers"`         // default 1
	ArchiveBackend     string `ini:"archive_backend"` // memory or sqlite
	ArchivePath        string `ini:"archive_path"`
	ChampionsFile      string `ini:"champions_file"`
}

// defaultConfig holds the values used when a key is absent.
func defaultConfig() *Config {
	return &Config{
		Population: PopulationConfig{PopSize: 100, MaxSpecies: 20},
		Run:        RunConfig{ReportInterval: 4, Workers: 1, ArchiveBackend: "memory"},
	}
}

// Inline comments must be preceded by whitespace.
var loadOptions = ini.LoadOptions{SpaceBeforeInlineComment: true}

// LoadConfig loads configuration parameters from an INI file.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(loadOptions, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return parseConfig(cfg)
}

// ParseConfig reads configuration from raw INI content.
func ParseConfig(data []byte) (*Config, error) {
	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return parseConfig(cfg)
}

func parseConfig(cfg *ini.File) (*Config, error) {
	config := defaultConfig()

	if err := cfg.Section("Genome").StrictMapTo(&config.Genome); err != nil {
		return nil, fmt.Errorf("failed to map [Genome] section: %w", err)
	}
	if err := cfg.Section("Population").StrictMapTo(&config.Population); err != nil {
		return nil, fmt.Errorf("failed to map [Population] section: %w", err)
	}
	if err := cfg.Section("Run").StrictMapTo(&config.Run); err != nil {
		return nil, fmt.Errorf("failed to map [Run] section: %w", err)
	}

	config.Run.CheckpointPrefix = strings.TrimSpace(config.Run.CheckpointPrefix)
	config.Run.ArchivePath = strings.TrimSpace(config.Run.ArchivePath)
	config.Run.ChampionsFile = strings.TrimSpace(config.Run.ChampionsFile)
	config.Run.ArchiveBackend = strings.ToLower(strings.TrimSpace(config.Run.ArchiveBackend))
	if config.Run.ArchiveBackend == "" {
		config.Run.ArchiveBackend = "memory"
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if err := c.Shape().Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Population.PopSize < 1 {
		return fmt.Errorf("config error: pop_size must be positive")
	}
	if c.Population.MaxSpecies < 0 {
		return fmt.Errorf("config error: max_species cannot be negative")
	}
	if c.Run.Generations < 0 {
		return fmt.Errorf("config error: generations cannot be negative")
	}
	if c.Run.ReportInterval < 1 {
		return fmt.Errorf("config error: report_interval must be positive")
	}
	if c.Run.CheckpointInterval < 0 {
		return fmt.Errorf("config error: checkpoint_interval cannot be negative")
	}
	if c.Run.Workers < 1 {
		return fmt.Errorf("config error: workers must be positive")
	}
	switch c.Run.ArchiveBackend {
	case "memory":
	case "sqlite":
		if c.Run.ArchivePath == "" {
			return fmt.Errorf("config error: archive_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("config error: invalid archive_backend '%s', must be one of 'memory', 'sqlite'", c.Run.ArchiveBackend)
	}
	return nil
}

// Shape returns the genome shape described by the [Genome] section.
func (c *Config) Shape() Shape {
	return Shape{
		Inputs:    c.Genome.NumInputs,
		Layers:    c.Genome.NumLayers,
		Outputs:   c.Genome.NumOutputs,
		Sublayers: c.Genome.SublayerWidth,
	}
}
