package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"

	"github.com/shoptext/wastatus"
	"github.com/shoptext/wastatus/backends/firestore"
	"github.com/shoptext/wastatus/handlers/whatsapp"
)

var version = "Dev"

func main() {
	config := wastatus.LoadConfig("wastatus.toml")
	config.Version = version

	// configure our logger
	logrus.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		logrus.Fatalf("invalid log level '%s'", config.LogLevel)
	}
	logrus.SetLevel(level)

	// if we have a DSN entry, try to initialize it
	if config.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(config.SentryDSN, []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel})
		if err != nil {
			logrus.Fatalf("invalid sentry DSN: '%s': %s", config.SentryDSN, err)
		}
		hook.Timeout = 0
		hook.StacktraceConfiguration.Enable = true
		hook.StacktraceConfiguration.Skip = 4
		hook.StacktraceConfiguration.Context = 5
		logrus.StandardLogger().Hooks.Add(hook)
	}

	backend, err := firestore.NewBackend(context.Background(), config)
	if err != nil {
		logrus.Fatal(err)
	}

	server := wastatus.NewServer(config, backend, whatsapp.NewReconciler(backend))
	if err := server.Start(); err != nil {
		logrus.Fatal(err)
	}

	// wait for our signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	logrus.WithField("signal", sig.String()).Info("stopping")

	server.Stop()
	backend.Close()
}
