package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/server"
	"github.com/leafdoctor/leafdoctor/internal/weather"
	"github.com/leafdoctor/leafdoctor/internal/webui"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local web UI",
	Long: `Starts a local web server hosting the LeafDoctor single-page client:
leaf upload and camera capture, My Garden, watering schedules, the
weather card and the assistant chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := newAPIClient(cfg)
		provider, err := newAssistant(cfg, client)
		if err != nil {
			return err
		}

		database, journal, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{Port: servePort, AllowAll: true})

		ui := webui.New(client, provider, weather.NewClient(""), weather.NewGeocoder(""), journal, *cfg)
		ui.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "leafdoctor v%s serving on http://localhost:%d\n", Version, servePort)
		fmt.Fprintf(os.Stderr, "  Inference server: %s\n", cfg.ServerURL)
		fmt.Fprintf(os.Stderr, "  Assistant: %s\n", provider.Name())

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8740, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
