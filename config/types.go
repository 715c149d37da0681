package config

// Config represents the complete configuration structure
type Config struct {
	TVMaze  TVMazeConfig  `mapstructure:"tvmaze"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TVMazeConfig holds TVMaze API connection and retry details
type TVMazeConfig struct {
	URL           string  `mapstructure:"url"`
	MaxRetries    int     `mapstructure:"max_retries"`
	BackoffFactor float64 `mapstructure:"backoff_factor"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
