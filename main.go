package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwoglom/glycemiabot/pkg/api"
	"github.com/jwoglom/glycemiabot/pkg/config"
	"github.com/jwoglom/glycemiabot/pkg/dispatcher"
	"github.com/jwoglom/glycemiabot/pkg/dosage"
	"github.com/jwoglom/glycemiabot/pkg/gateway"
	"github.com/jwoglom/glycemiabot/pkg/reminder"
	"github.com/jwoglom/glycemiabot/pkg/reply"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
)

func main() {
	// if both verbose and quiet are chosen, e.g., -v -q, the verbose dominates
	var traceLevel = flag.Bool("v", false, "verbose off by default, TraceLevel")
	var infoLevel = flag.Bool("q", false, "quiet off by default, InfoLevel")
	var logLevel = flag.String("log-level", "", "explicit log level (trace, debug, info, warn, error); overrides -v and -q")
	var mode = flag.String("mode", "", "gateway: console or websocket (default console, or GLYCEMIABOT_MODE)")
	var listenAddr = flag.String("listen", "", "listen address for websocket mode (or GLYCEMIABOT_LISTEN)")
	var reminderDelay = flag.Duration("reminder-delay", reminder.DefaultDelay, "delay before the standing reminder is sent")

	flag.Parse()

	cfg, err := config.New(*mode, *listenAddr, *reminderDelay, *logLevel)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.LogLevel != "" {
		log.SetLevel(cfg.Level)
	} else if *traceLevel {
		log.SetLevel(log.TraceLevel)
	} else if *infoLevel {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(log.DebugLevel)
	}

	log.SetFormatter(&logrus.TextFormatter{
		DisableQuote: true,
		ForceColors:  true,
	})

	log.Info("Starting Glycemia Bot")
	log.Infof("  Ideal glycemia:   %d mg/dL", dosage.IdealGlycemia)
	log.Infof("  Units per step:   %d mg/dL", dosage.UnitsPerStep)
	log.Infof("  Low threshold:    %d mg/dL", dosage.LowThreshold)
	log.Infof("  Dose threshold:   %d mg/dL", dosage.DoseThreshold)
	log.Infof("  Reminder delay:   %v", cfg.ReminderDelay)

	scheduler := reminder.NewScheduler(cfg.ReminderDelay, reply.Reminder())
	d := dispatcher.New(scheduler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ModeWebSocket:
		server := api.New(d, cfg.ReminderDelay)
		server.SetStatsProvider(d)
		log.Info("Bot is ready")
		if err := server.Start(ctx, cfg.ListenAddr); err != nil {
			log.Fatalf("WebSocket gateway failed: %s", err)
		}

	default:
		console := gateway.NewConsole(os.Stdin, os.Stdout)
		log.Info("Bot is ready")
		if err := console.Run(ctx, d); err != nil && ctx.Err() == nil {
			log.Fatalf("Console gateway failed: %s", err)
		}
	}

	log.Info("Glycemia Bot stopped")
}
