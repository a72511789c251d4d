package main

import (
	"fmt"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/adapters/yamlfile"
	"github.com/aretw0/strata/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <network.yaml>",
	Short: "Render the network and its hub partitioning as Mermaid",
	Long:  `Prints a Mermaid flowchart of the layer wiring. With --hubs, the computed buffer partitioning is overlaid as subgraphs.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraph(cmd, args[0])
	},
}

func init() {
	graphCmd.Flags().Bool("hubs", false, "Overlay the computed hub partitioning")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, path string) error {
	reg, err := yamlfile.LoadFile(path)
	if err != nil {
		return err
	}

	withHubs, _ := cmd.Flags().GetBool("hubs")
	if !withHubs {
		fmt.Print(graph.GenerateMermaid(reg, nil))
		return nil
	}

	plan, err := strata.Plan(reg, strata.WithLogger(newLogger(cmd)))
	if err != nil {
		return err
	}
	fmt.Print(graph.GenerateMermaid(reg, plan))
	return nil
}
