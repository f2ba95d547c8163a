package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"taskbot/pkg/config"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskbot",
		Short:   "Telegram task bot with an analytics dashboard",
		Version: Version,
	}

	rootCmd.AddCommand(botCmd())
	rootCmd.AddCommand(webCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot and reminder scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				return a.runBot(ctx)
			})
		},
	}
}

func webCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Run the analytics dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetString("port")
			return withApp(func(ctx context.Context, a *app) error {
				return a.runWeb(ctx, port)
			})
		},
	}
	cmd.Flags().StringP("port", "p", "", "Dashboard port (overrides PORT)")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot and the dashboard in one process",
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetString("port")
			return withApp(func(ctx context.Context, a *app) error {
				g, ctx := errgroup.WithContext(ctx)
				g.Go(func() error { return a.runBot(ctx) })
				g.Go(func() error { return a.runWeb(ctx, port) })
				return g.Wait()
			})
		},
	}
	cmd.Flags().StringP("port", "p", "", "Dashboard port (overrides PORT)")
	return cmd
}

// withApp loads configuration, opens the database and runs fn until SIGINT or
// SIGTERM.
func withApp(fn func(ctx context.Context, a *app) error) error {
	cfg := config.Load()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fn(ctx, a); err != nil {
		return err
	}
	log.Println("Shutdown complete")
	return nil
}
