package main

import (
	"fmt"
	"net/http"

	server "github.com/aretw0/strata/internal/adapters/http"
	"github.com/aretw0/strata/internal/metrics"
	"github.com/aretw0/strata/pkg/adapters/memory"
	redisstore "github.com/aretw0/strata/pkg/adapters/redis"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner as a JSON API",
	Long: `Starts an HTTP server exposing POST /v1/plan, GET /v1/plan/{fingerprint},
/healthz and /metrics. Computed plans are cached by fingerprint in memory
or, with --redis, in a Redis instance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("redis", "", "Redis address for the plan cache (empty = in-memory)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	logger := newLogger(cmd)

	var store ports.PlanStore
	if redisAddr, _ := cmd.Flags().GetString("redis"); redisAddr != "" {
		store = redisstore.New(redisAddr, "", 0)
		logger.Info("using redis plan cache", "addr", redisAddr)
	} else {
		store = memory.NewStore()
	}

	handler := server.NewHandler(store, logger, metrics.New())

	addr, _ := cmd.Flags().GetString("addr")
	logger.Info("serving planner API", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
