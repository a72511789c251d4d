package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/adapters/yamlfile"
	"github.com/aretw0/strata/internal/presentation/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var planCmd = &cobra.Command{
	Use:   "plan <network.yaml>",
	Short: "Compute the buffer layout for a network definition",
	Long: `Loads a network definition, validates its wiring, and prints the
computed buffer layout. Layout failures are configuration errors: fix
the connectivity in the definition and run again.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd, args[0])
	},
}

func init() {
	planCmd.Flags().String("output", "pretty", "Output format: json, yaml or pretty")
	planCmd.Flags().Bool("strict", false, "Treat validation warnings as errors")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, path string) error {
	reg, err := yamlfile.LoadFile(path)
	if err != nil {
		return err
	}

	opts := []strata.Option{strata.WithLogger(newLogger(cmd))}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		opts = append(opts, strata.WithStrictValidation())
	}
	plan, err := strata.Plan(reg, opts...)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("output")
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case "yaml":
		// Route through JSON so the tree serializes in its canonical
		// interchange format.
		data, err := json.Marshal(plan)
		if err != nil {
			return err
		}
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return err
		}
		return yaml.NewEncoder(os.Stdout).Encode(generic)
	case "pretty":
		fmt.Println(tui.Headline(plan))
		fmt.Print(tui.Render(plan))
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
