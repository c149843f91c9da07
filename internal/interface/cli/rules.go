package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/skyline-mro/wpaudit/internal/rules"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and manage the classification rule set",
	}
	cmd.AddCommand(newRulesShowCmd())
	cmd.AddCommand(newRulesInitCmd())
	return cmd
}

func newRulesShowCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active rule set as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := loadLibrary(afero.NewOsFs(), rulesPath)
			if err != nil {
				return err
			}
			data, err := lib.RuleSet().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "rules YAML file (default: built-in rules)")
	return cmd
}

func newRulesInitCmd() *cobra.Command {
	var out string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in rule set to a YAML file for editing",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()

			if !force {
				if exists, _ := afero.Exists(fs, out); exists {
					return fmt.Errorf("%s already exists (use --force to overwrite)", out)
				}
			}

			data, err := rules.Default().Marshal()
			if err != nil {
				return err
			}
			if err := afero.WriteFile(fs, out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rule set written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "rules.yaml", "destination file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
