package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/errdex/errdex/internal/analytics"
	"github.com/errdex/errdex/internal/catalog"
	"github.com/errdex/errdex/internal/config"
	"github.com/errdex/errdex/internal/db"
	"github.com/errdex/errdex/internal/notify"
	"github.com/errdex/errdex/internal/prefs"
	"github.com/errdex/errdex/internal/server"
	"github.com/errdex/errdex/internal/webui"
)

// shutdownTimeout bounds graceful shutdown and the final analytics flush.
const shutdownTimeout = 10 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the knowledge-base web server",
	Long:  `Loads the error catalog and serves the browsable knowledge base with search, history, and feedback.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != 0 {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Load the catalog. A failed session start is fatal: without data
		// there is nothing to serve.
		src := catalog.NewSource(cfg.Catalog.CategoriesURL, cfg.Catalog.SubcategoriesURL, cfg.Catalog.ErrorsURL)
		cat, err := catalog.Load(ctx, src)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		// Open database.
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, "errdex.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		store := prefs.NewStore(database)
		if !store.Restored() && cfg.DefaultTheme == "dark" {
			if err := store.SetTheme(ctx, prefs.ThemeDark); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: applying default theme: %v\n", err)
			}
		}

		notifier := notify.New()
		tracker := analytics.New(cfg.AnalyticsEndpoint)
		tracker.SetVerbose(verbose)

		srv := server.New(server.Config{Port: cfg.Port, AllowAll: true})
		r := srv.Router()

		prefs.RegisterRoutes(r, store)
		notify.RegisterRoutes(r, notifier)
		webui.New(cat, store, notifier, tracker, cfg.SiteName).RegisterRoutes(r)

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			tracker.Flush(flushCtx)
			srv.Shutdown(flushCtx)
		}()

		fmt.Fprintf(os.Stderr, "errdex v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Errors: %d across %d categories\n", cat.TotalErrors(), len(cat.Categories()))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured port")
	rootCmd.AddCommand(serveCmd)
}
