package config

// Config is the persisted mythic configuration
type Config struct {
	Version string        `yaml:"version"`
	Wine    WineConfig    `yaml:"wine"`
	Bottles BottlesConfig `yaml:"bottles"`
	Log     LogConfig     `yaml:"log"`
}

// WineConfig locates the wine runtime
type WineConfig struct {
	// Binary is the wine executable. A bare name is resolved on PATH;
	// an absolute path is used as-is.
	Binary string `yaml:"binary"`
}

// BottlesConfig configures where bottle prefixes live
type BottlesConfig struct {
	// Directory is the container holding one subdirectory per bottle.
	Directory string `yaml:"directory"`
}

// LogConfig configures diagnostic output
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the default mythic configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Wine: WineConfig{
			Binary: "wine",
		},
		Bottles: BottlesConfig{
			Directory: DefaultBottlesDir(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
