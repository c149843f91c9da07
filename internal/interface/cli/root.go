package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/skyline-mro/wpaudit/internal/app/config"
	infraConfig "github.com/skyline-mro/wpaudit/internal/infra/config"
	"github.com/skyline-mro/wpaudit/internal/interface/cli/version"
	"github.com/skyline-mro/wpaudit/internal/rules"
)

// globalConfig holds the loaded configuration for all commands
var globalConfig config.Config

func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "wpaudit",
		Short:        "Work package documentation and order audit",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration before any command runs
			// Priority: setting.json > defaults
			baseDir := ".wpaudit"
			if home := os.Getenv("WPAUDIT_HOME"); home != "" {
				baseDir = home
			}

			cfg, err := infraConfig.LoadSettings(baseDir)
			if err != nil {
				return err
			}
			globalConfig = cfg
			InitGlobalLogger(cfg.StderrLevel())
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newOrderCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newLogbookCmd())
	cmd.AddCommand(version.NewCommand())
	return cmd
}

// loadLibrary compiles the active rule set, from a YAML file when a path
// is given and from the built-in defaults otherwise.
func loadLibrary(fs afero.Fs, path string) (*rules.Library, error) {
	if path == "" && globalConfig != nil {
		path = globalConfig.RulesPath()
	}
	if path == "" {
		return rules.Compile(rules.Default())
	}
	rs, err := rules.Load(fs, path)
	if err != nil {
		return nil, err
	}
	return rules.Compile(rs)
}

// dataDir resolves the working data directory, creating it on demand.
func dataDir() (string, error) {
	dir := filepath.Join(".wpaudit", "var")
	if globalConfig != nil && globalConfig.DataDir() != "" {
		dir = globalConfig.DataDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
