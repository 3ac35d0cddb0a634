package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"greenpath/internal/db"
	"greenpath/internal/devserver"
	"greenpath/internal/logging"
)

func newDevServerCmd(opts *options) *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local stand-in for the Green Path API",
		Long:  "Serves the REST endpoints the dashboard uses from a local SQLite file,\nseeded with a demo user and upcoming events on first start.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverOpts := *opts
			serverOpts.interactive = false
			cfg, _, err := loadConfig(&serverOpts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.DevServer.Addr = addr
			}
			if dbPath != "" {
				cfg.DevServer.DBPath = dbPath
			}

			log, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return err
			}
			if cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			conn, err := db.Open(cfg.DevServer.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Seed(conn, cfg.UserProfile(), time.Now()); err != nil {
				return err
			}
			log.Info().Str("db", cfg.DevServer.DBPath).Msg("database ready")

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return devserver.New(conn, log, reg).Run(ctx, cfg.DevServer.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file (default: ~/.greenpath/devserver.db)")
	return cmd
}
