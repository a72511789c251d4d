package main

import (
	"fmt"
	"os"

	"github.com/aretw0/strata/internal/adapters/yamlfile"
	"github.com/aretw0/strata/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <network.yaml>",
	Short: "Check a network definition for consistency",
	Long:  `Parses the definition and reports malformed shapes and dangling wires without computing a layout.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Network definition is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, path string) error {
	reg, err := yamlfile.LoadFile(path)
	if err != nil {
		return err
	}
	return validator.ValidateNetwork(reg, newLogger(cmd))
}
