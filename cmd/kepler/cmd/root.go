package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/msto63/keplerkv/internal/batch"
	"github.com/msto63/keplerkv/internal/console"
	"github.com/msto63/keplerkv/internal/repl"
)

var (
	cfgFile string
	silent  bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kepler [files...]",
	Short: "KeplerKV - key-value store with a query language",
	Long: `KeplerKV is an in-memory key-value store driven by a small query
language:

  \SET _name 'Kepler' _year 1571
  \GET _name
  \APPEND _list 4 5

Without arguments an interactive session starts. With arguments every
.kep file is executed statement by statement; statements end with ';'.

Run 'kepler commands' for the language reference.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./kepler.toml or $HOME/.config/keplerkv/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic logging")
	rootCmd.Flags().BoolVarP(&silent, "silent", "s", false, "suppress command output, errors are still shown")
}

func runRoot(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())

	a, err := newApp(cmd, appOptions{
		confirmIn: in,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) > 0 {
		return batch.Run(cmd.Context(), args, batch.Options{
			Engine:  a.engine,
			Printer: a.printer,
			Logger:  a.logger,
		})
	}

	return repl.Run(cmd.Context(), repl.Options{
		Engine:      a.engine,
		Printer:     a.printer,
		Input:       in,
		Logger:      a.logger,
		Prompt:      a.cfg.REPL.Prompt,
		Interactive: isTerminal(cmd.InOrStdin()),
	})
}

func isTerminal(r interface{}) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printError(err error) {
	console.New(console.Options{Err: os.Stderr, Color: true}).PrintError(err)
}

func printfOut(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
