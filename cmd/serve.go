package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leonardinius/treelox/internal/lox"
	"github.com/leonardinius/treelox/internal/playground"
)

func (app *LoxApp) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP playground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			server := playground.New(cfg)

			// Graceful shutdown
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				log.Println("Shutting down playground...")
				if err := server.Shutdown(); err != nil {
					log.Printf("Error during shutdown: %v", err)
				}
			}()

			log.Printf("treelox playground listening on %s", cfg.Addr)
			if err := server.Listen(cfg.Addr); err != nil {
				return &exitError{code: lox.ExitSoftware, err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, env TREELOX_ADDR)")

	return cmd
}
