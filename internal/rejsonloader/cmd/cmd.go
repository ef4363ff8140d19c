// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

// Package cmd builds the rejson-loader command line.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/innovationmech/rejson-loader/internal/rejsonloader/config"
	"github.com/innovationmech/rejson-loader/internal/rejsonloader/loader"
	"github.com/innovationmech/rejson-loader/internal/rejsonloader/metrics"
	"github.com/innovationmech/rejson-loader/internal/rejsonloader/store"
	"github.com/innovationmech/rejson-loader/internal/rejsonloader/ui"
	"github.com/innovationmech/rejson-loader/pkg/logger"
)

// pushTimeout bounds the pushgateway request made after a run.
const pushTimeout = 5 * time.Second

// connector is replaced in tests.
var connector loader.Connector = loader.RedisConnector

// NewRootLoaderCommand creates the rejson-loader root command.
func NewRootLoaderCommand() *cobra.Command {
	v := config.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "rejson-loader FILE",
		Short: "Load a JSON file into RedisJSON and read it back",
		Long: `rejson-loader parses a local JSON file, stores it with JSON.SET under the
file's base name, fetches it again with JSON.GET and prints what the store
returned.

Settings can also be given in a config file (--config) or through
REJSON_LOADER_* environment variables, e.g. REJSON_LOADER_DIAL_TIMEOUT=2s.`,
		Example: `  rejson-loader person.json
  rejson-loader -a redis.internal -p 6380 data/person.json`,
		Args:          exactlyOneFile,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, v, configFile, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringP("address", "a", store.DefaultHost, "Redis server host")
	flags.IntP("port", "p", store.DefaultPort, "Redis server port")
	flags.Int("db", 0, "Redis database index")
	flags.Duration("timeout", 0, "Deadline for the whole run (0 means none)")
	flags.Duration("dial-timeout", 5*time.Second, "Timeout for connecting to Redis (0 means the 5s default)")
	flags.Duration("read-timeout", 3*time.Second, "Timeout for Redis socket reads (0 means the 3s default)")
	flags.Duration("write-timeout", 3*time.Second, "Timeout for Redis socket writes (0 means the 3s default)")
	flags.String("pushgateway", "", "Prometheus Pushgateway URL to push run metrics to")
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.Bool("no-color", false, "Disable colored output")
	flags.StringVar(&configFile, "config", "", "Config file path")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		_ = v.BindPFlag(flagKey(f.Name), f)
	})

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return loader.NewArgumentError("invalid flags", err)
	})

	return cmd
}

func exactlyOneFile(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 1:
		return nil
	case 0:
		return loader.NewArgumentError("FILE argument is required", nil)
	default:
		return loader.NewArgumentError(fmt.Sprintf("expected exactly one FILE argument, got %d", len(args)), nil)
	}
}

func flagKey(name string) string {
	switch name {
	case "dial-timeout":
		return config.KeyDialTimeout
	case "read-timeout":
		return config.KeyReadTimeout
	case "write-timeout":
		return config.KeyWriteTimeout
	case "no-color":
		return config.KeyNoColor
	}
	return name
}

func runLoad(cmd *cobra.Command, v *viper.Viper, configFile, file string) error {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return loader.NewArgumentError("invalid configuration", err)
	}

	logger.SetVerbose(cfg.Verbose)
	log := logger.GetLogger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	m := metrics.NewLoaderMetrics()
	l := loader.New(cfg.RedisConfig(),
		loader.WithConnector(connector),
		loader.WithPrinter(ui.NewPrinter(ui.WithOutput(cmd.OutOrStdout()), ui.WithNoColor(cfg.NoColor))),
		loader.WithMetrics(m),
		loader.WithLogger(log),
	)

	_, runErr := l.Run(ctx, file)

	if cfg.Pushgateway != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := m.Push(pushCtx, cfg.Pushgateway, metrics.DefaultJob); err != nil {
			log.Warn("Failed to push metrics", zap.String("pushgateway", cfg.Pushgateway), zap.Error(err))
		}
	}

	return runErr
}
