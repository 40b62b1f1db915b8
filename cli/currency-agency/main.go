package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/viper"

	currency "github.com/malusev998/currency-agency"
	"github.com/malusev998/currency-agency/cli/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	err := cmd.Execute(&cmd.Config{
		Ctx:    ctx,
		Logger: logger,
		Viper:  viper.GetViper(),
		Build:  build,
	})

	stop()

	if err != nil {
		_ = level.Error(logger).Log("err", err, "code", currency.StatusCode(err))
		os.Exit(1)
	}
}
