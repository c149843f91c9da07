package config

// Config provides read-only access to application configuration.
// This interface abstracts the configuration source (JSON, defaults)
// and keeps the app layer free of infrastructure details.
type Config interface {
	// Core settings
	Home() string        // Base directory for wpaudit state
	RulesPath() string   // Path to a rules YAML file; empty means built-in defaults
	DataDir() string     // Directory for fetched exports and generated reports
	LogbookPath() string // Path to the run logbook database

	// Remote store
	Bucket() string // S3 bucket holding maintenance exports
	Prefix() string // Key prefix inside the bucket
	Region() string // AWS region override

	// Execution
	Workers() int // Classification worker count; 0 means one per CPU

	// Logging
	StderrLevel() string // Stderr log level: debug, info, warn, error

	// Metadata
	ConfigSource() string // Source of configuration: "json" or "default"
	SettingPath() string  // Path to setting.json if loaded from file
}

// AppConfig is the concrete implementation of Config.
type AppConfig struct {
	home        string
	rulesPath   string
	dataDir     string
	logbookPath string

	bucket string
	prefix string
	region string

	workers int

	stderrLevel string

	configSource string
	settingPath  string
}

func (c *AppConfig) Home() string        { return c.home }
func (c *AppConfig) RulesPath() string   { return c.rulesPath }
func (c *AppConfig) DataDir() string     { return c.dataDir }
func (c *AppConfig) LogbookPath() string { return c.logbookPath }

func (c *AppConfig) Bucket() string { return c.bucket }
func (c *AppConfig) Prefix() string { return c.prefix }
func (c *AppConfig) Region() string { return c.region }

func (c *AppConfig) Workers() int { return c.workers }

func (c *AppConfig) StderrLevel() string { return c.stderrLevel }

func (c *AppConfig) ConfigSource() string { return c.configSource }
func (c *AppConfig) SettingPath() string  { return c.settingPath }

// NewAppConfig creates a new AppConfig with the given values.
// This is typically called by the infrastructure layer after loading
// and merging configuration sources.
func NewAppConfig(
	home, rulesPath, dataDir, logbookPath string,
	bucket, prefix, region string,
	workers int,
	stderrLevel string,
	configSource, settingPath string,
) *AppConfig {
	return &AppConfig{
		home:         home,
		rulesPath:    rulesPath,
		dataDir:      dataDir,
		logbookPath:  logbookPath,
		bucket:       bucket,
		prefix:       prefix,
		region:       region,
		workers:      workers,
		stderrLevel:  stderrLevel,
		configSource: configSource,
		settingPath:  settingPath,
	}
}
