package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/moranmiz/Cooking-Up-Creativity/internal/logging"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/tree"
)

var (
	verbsPath string
	seed      int64
	verbose   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&verbsPath, "verbs", "", "Path to a cooking-verb categorization JSON (default: built-in table)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed for shuffling and cut selection")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   "cookup",
	Short: "Cooking Up Creativity: recombine recipe trees into new dish ideas",
	Long: `cookup combines pairs of recipe trees by computing the tree edit
distance between them and applying a biased random prefix of the edit
script, producing intermediate trees that blend both dishes.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

func loadVerbs() (tree.VerbTable, error) {
	if verbsPath == "" {
		return tree.DefaultVerbTable(), nil
	}
	return tree.LoadVerbTable(verbsPath)
}
