package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nextgen-ti/kbportal/internal/audit"
	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/chat"
	"github.com/nextgen-ti/kbportal/internal/config"
	"github.com/nextgen-ti/kbportal/internal/db"
	"github.com/nextgen-ti/kbportal/internal/server"
	"github.com/nextgen-ti/kbportal/internal/session"
	"github.com/nextgen-ti/kbportal/internal/web"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the support portal web server",
	Long:  `Starts the HTTP server hosting the support portal page, its JSON API, the assistant websocket and, when enabled, the audit log API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		logger := newLogger(os.Stderr, cfg)
		cat := catalog.Default()
		selector := chat.DefaultSelector()

		srv := server.New(server.Config{
			Port:           cfg.Server.Port,
			AllowAll:       cfg.Server.AllowAllOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		}, logger)

		opts := session.Options{
			Catalog:        cat,
			Selector:       selector,
			ReplyDelay:     cfg.Chat.ReplyDelay,
			KeepTranscript: cfg.Chat.Transcript == config.TranscriptKeep,
			RatePerMinute:  cfg.Chat.RatePerMinute,
			Logger:         logger,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Audit trail.
		if cfg.Audit.Enabled {
			database, err := db.Open(cfg.Audit.Path)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			auditStore := audit.NewStore(database)
			audit.RegisterRoutes(srv.Router(), auditStore)
			opts.Recorder = auditStore
			go auditStore.RunRetention(ctx, cfg.Audit.Retention, time.Hour, logger)
		}

		sessions := session.NewStore(opts, cfg.Session.TTL)

		portal, err := web.New(web.Config{
			CookieName: cfg.Session.CookieName,
			SurveyURL:  cfg.SurveyURL,
		}, cat, sessions, selector, logger)
		if err != nil {
			return fmt.Errorf("creating portal: %w", err)
		}
		portal.RegisterRoutes(srv.Router())

		go sessions.Run(ctx, 0)

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown", "err", err)
			}
		}()

		logStartup(logger, cfg, cat)
		return srv.Start()
	},
}

func logStartup(logger *log.Logger, cfg *config.Config, cat *catalog.Catalog) {
	logger.Info("kbportal server starting", "version", Version, "port", cfg.Server.Port)
	logger.Info("knowledge base loaded", "articles", cat.Len(), "categories", len(cat.Categories()))
	logger.Info("chat", "reply_delay", cfg.Chat.ReplyDelay, "transcript", cfg.Chat.Transcript, "rate_per_minute", cfg.Chat.RatePerMinute)
	if cfg.Audit.Enabled {
		logger.Info("audit log enabled", "path", cfg.Audit.Path, "retention", cfg.Audit.Retention)
	} else {
		logger.Warn("audit log disabled")
	}
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
