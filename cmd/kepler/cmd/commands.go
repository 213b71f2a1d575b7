package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/foundation/kql/registry"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands of the query language",
	Args:  cobra.NoArgs,
	RunE:  runCommands,
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}

func runCommands(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := registry.New(registry.Options{Logger: kvlog.NewNop(), Aliases: cfg.REPL.Aliases})
	if err != nil {
		return err
	}
	printfOut(cmd, "%s\n", renderCommands(reg))
	return nil
}

func renderCommands(reg *registry.Registry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("COMMAND", "ALIASES", "USAGE", "DESCRIPTION")

	for _, def := range reg.Definitions() {
		aliases := make([]string, 0)
		for _, a := range reg.AliasesFor(def.Kind) {
			if a != def.Name() {
				aliases = append(aliases, `\`+a)
			}
		}

		summary := def.Summary
		for _, opt := range def.Options {
			summary += "\n  " + formatOption(opt) + ": " + opt.Description
		}
		t.Row(`\`+def.Name(), strings.Join(aliases, " "), def.Usage, summary)
	}
	return t.String()
}

func formatOption(opt registry.OptionDefinition) string {
	var flags []string
	if opt.Short != "" {
		flags = append(flags, "-"+opt.Short)
	}
	if opt.Long != "" {
		flags = append(flags, "--"+opt.Long)
	}
	return strings.Join(flags, ", ")
}
