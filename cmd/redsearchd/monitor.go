package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dreamware/redsearch/internal/config"
	"github.com/dreamware/redsearch/internal/monitor"
)

func newMonitorCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Print every command sent to the backing Redis store",
		Long: `monitor attaches a command hook to the backing store and prints each
command as it is sent, in the form "HH:MM:SS.ffffff\tCMD ARGS...", the same
way the original monitor.py prints redis.monitor() output. Press Ctrl+C to
detach and exit.`,
		Example: `  redsearchd monitor --config redsearch.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Store != config.StoreRedis {
				return fmt.Errorf("redsearchd: monitor requires store: redis in config, got %q", cfg.Store)
			}

			client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			defer client.Close()

			detach := monitor.Attach(client, os.Stdout)
			defer detach()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(os.Stderr, "redsearchd: monitoring %s, press Ctrl+C to stop\n", cfg.RedisAddr)
			<-ctx.Done()
			return nil
		},
	}

	return cmd
}
