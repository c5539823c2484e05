// Command oracled runs a fleet of simulated status reporters. It registers
// the fleet through the HTTP API, then answers every status request it reads
// from the events topic.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"flightsurety/internal/platform/kafka/consumer"
	"flightsurety/internal/platform/logger"
	"flightsurety/internal/reporter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Command().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "oracled: %v\n", err)
		os.Exit(1)
	}
}

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:          "oracled",
		Short:        "Runs simulated flight status reporters",
		RunE:         runFunc,
		SilenceUsage: true,
	}
	AddFlags(c.Flags())
	return c
}

func runFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}
	ctx := c.Context()
	log := logger.New(config.LogLevel, config.LogFormat)

	strategy, err := reporter.ParseStrategy(config.Strategy, config.RandSeed)
	if err != nil {
		return err
	}

	api := reporter.NewClient(config.APIURL, config.AdminToken, &http.Client{Timeout: config.Timeout})
	fleet := reporter.NewFleet(api, strategy, config.Reporters, config.Fee,
		reporter.WithLogger(log),
		reporter.WithSeed(config.Seed),
		reporter.WithConcurrency(config.Concurrency),
	)
	if err := fleet.Setup(ctx); err != nil {
		return fmt.Errorf("register reporters: %w", err)
	}
	log.Info("reporter fleet registered", "reporters", len(fleet.Members()), "strategy", config.Strategy)

	router := consumer.NewRouter(log, nil)
	router.Register(config.Topic, reporter.EventHandler(fleet, log))

	cons, err := consumer.New(consumer.Config{
		Brokers:   config.Brokers,
		GroupID:   config.Group,
		Topics:    router.Topics(),
		FromStart: config.FromStart,
	}, log)
	if err != nil {
		return err
	}
	defer cons.Close()

	log.Info("consuming status requests", "topic", config.Topic, "group", config.Group)
	if err := cons.Run(ctx, router); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("oracled stopped")
	return nil
}
