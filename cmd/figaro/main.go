package main

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/go-go-golems/figaro/pkg/conversation"
	"github.com/go-go-golems/figaro/pkg/events"
	"github.com/go-go-golems/figaro/pkg/simulator"
	"github.com/go-go-golems/figaro/pkg/ui"
)

var rootCmd = &cobra.Command{
	Use:   "figaro",
	Short: "Terminal chat assistant backed by a canned response simulator",
	RunE:  run,
}

func init() {
	rootCmd.Flags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().String("log-file", "", "Write logs to this file instead of discarding them")
	rootCmd.Flags().Duration("base-delay", simulator.DefaultBaseDelay, "Base delay between streamed chunks")
	rootCmd.Flags().Duration("jitter", simulator.DefaultJitterWindow, "Random jitter added to each chunk delay")
	rootCmd.Flags().Bool("with-samples", true, "Seed the sidebar with sample conversations")
	rootCmd.Flags().Bool("verbose", false, "Verbose event router logging")

	viper.SetEnvPrefix("FIGARO")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(rootCmd.Flags())
}

func setupLogging() error {
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	// the terminal belongs to the TUI, so logs go to a file or nowhere
	logFile := viper.GetString("log-file")
	if logFile == "" {
		log.Logger = zerolog.New(io.Discard)
		return nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "could not open log file")
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	if err := setupLogging(); err != nil {
		return err
	}

	storeOptions := []conversation.StoreOption{}
	if viper.GetBool("with-samples") {
		storeOptions = append(storeOptions,
			conversation.WithConversations(conversation.SampleConversations(time.Now())...))
	}
	store := conversation.NewStore(storeOptions...)

	routerOptions := []events.EventRouterOption{}
	if viper.GetBool("verbose") {
		routerOptions = append(routerOptions, events.WithVerbose(true))
	}
	router, err := events.NewEventRouter(routerOptions...)
	if err != nil {
		return errors.Wrap(err, "failed to create event router")
	}
	defer func() {
		_ = router.Close()
	}()

	sim := simulator.NewSimulator(store,
		simulator.WithBaseDelay(viper.GetDuration("base-delay")),
		simulator.WithJitterWindow(viper.GetDuration("jitter")),
		simulator.WithSessionID(uuid.NewString()),
	)
	if err := sim.AddPublishedTopic(router.Publisher, "ui"); err != nil {
		return errors.Wrap(err, "failed to attach simulator to router")
	}

	p := tea.NewProgram(
		ui.NewModel(store, sim),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	router.AddHandler("ui", "ui", ui.StreamForwardFunc(p))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	eg := errgroup.Group{}
	eg.Go(func() error {
		defer cancel()
		return router.Run(ctx)
	})
	eg.Go(func() error {
		defer cancel()
		<-router.Running()
		if _, err := p.Run(); err != nil {
			return errors.Wrap(err, "UI crashed")
		}
		return nil
	})

	err = eg.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
