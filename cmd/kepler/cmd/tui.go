package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/keplerkv/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the full-screen query console",
	Long: `Starts the terminal user interface of KeplerKV.

Navigation:
  Enter     - Run the query
  Up/Down   - Walk the input history
  y/n       - Answer an overwrite question
  Ctrl+L    - Clear the transcript
  Ctrl+C    - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	bridge := tui.NewBridge()

	a, err := newApp(cmd, appOptions{output: bridge, confirmer: bridge})
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(
		tui.NewModel(tui.Options{
			Context: cmd.Context(),
			Engine:  a.engine,
			Bridge:  bridge,
			Prompt:  a.cfg.REPL.Prompt,
			NoColor: !a.cfg.ColorEnabled(),
		}),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
