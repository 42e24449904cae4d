package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wegrowup-api/cmd/api/app"
	domain "wegrowup-api/internal/domain/user"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "wegrowup-api",
	Short:         "Serves the sample user record over REST, gRPC and the gRPC gateway",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC, gateway and Gin servers",
	RunE:  runServe,
}

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Print the sample user record as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(domain.Sample())
	},
}

func init() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "."
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", defaultPath, "directory containing app.env")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dataCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, configPath)
	if err != nil {
		return err
	}

	return a.Run(ctx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "application exited with error: %v\n", err)
		os.Exit(1)
	}
}
