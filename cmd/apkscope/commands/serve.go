/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: serve.go
Description: CLI command for running the ApkScope HTTP service. Wires up the
staging area, inspector, orchestrator, and server, and handles signals for
graceful shutdown.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kleascm/apkscope/pkg/analysis"
	"github.com/kleascm/apkscope/pkg/inspector"
	"github.com/kleascm/apkscope/pkg/server"
	"github.com/kleascm/apkscope/pkg/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ApkScope HTTP service",
	Long: `Run the upload and analysis HTTP API. Uploaded packages are staged on disk,
analyzed on request, and deleted once analysis completes (success or failure).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}

		logger, err := SetupLogging(cfg)
		if err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
		defer logger.Close()

		staging, err := storage.NewStaging(cfg.StagingDir, cfg.MaxUploadSize)
		if err != nil {
			return fmt.Errorf("failed to setup staging area: %w", err)
		}

		insp := inspector.NewAndroidBinaryInspector()
		orchestrator := analysis.NewOrchestrator(staging, insp, logger)
		srv := server.NewServer(cfg, logger, staging, orchestrator)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle signals for graceful shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-c
			fmt.Println("\n[!] Interrupt received, shutting down...")
			cancel()
		}()

		return srv.Start(ctx)
	},
}

// Export ServeCmd for registration in main.go
var ServeCmd = serveCmd
