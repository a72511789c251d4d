package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/strata/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Strata plans contiguous buffer layouts for dataflow networks",
	Long: `Strata takes a network definition (layers, shapes, wires) and computes
a memory plan assigning every endpoint a contiguous element range inside
one of several hub buffers, so consumers read producers via plain slices.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// newLogger builds the command logger honoring --verbose.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return logging.New(level)
}
