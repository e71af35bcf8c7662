package main

import (
	"context"
	"fmt"

	"github.com/containerd/log"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/woozymasta/korobin/config"
)

const (
	configFlag   = "config"
	logLevelFlag = "log-level"
)

// state carries the loaded configuration into command actions.
type state struct {
	cfg *config.Config
}

func newApp() *cli.App {
	s := &state{cfg: config.NewConfig()}

	app := cli.NewApp()
	app.Name = "korobin"
	app.Usage = "compress and decompress Kororinpa editor levels"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  configFlag,
			Usage: "path to the configuration file",
			Value: config.DefaultConfigPath,
		},
		cli.StringFlag{
			Name:  logLevelFlag,
			Usage: "set the logging level [trace, debug, info, warn, error, fatal, panic]; overrides the config file",
		},
	}
	app.Before = s.before
	app.Commands = []cli.Command{
		compressCommand(s),
		decompressCommand(s),
		infoCommand(s),
		packCommand(s),
		unpackCommand(s),
		configCommand(s),
	}

	return app
}

func (s *state) before(c *cli.Context) error {
	cfg, err := config.NewConfigFromToml(c.String(configFlag))
	if err != nil {
		return err
	}
	if lvl := c.String(logLevelFlag); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	out := c.App.ErrWriter
	if out == nil {
		out = cli.ErrWriter
	}
	logrus.SetOutput(out)

	s.cfg = cfg
	return nil
}

// commandContext returns a context whose logger is tagged with the command name.
func commandContext(c *cli.Context) context.Context {
	return log.WithLogger(context.Background(), log.L.WithField("command", c.Command.Name))
}

// requireArgs fails unless the command got at least n positional arguments.
func requireArgs(c *cli.Context, n int) error {
	if c.NArg() < n {
		return fmt.Errorf("%s: expected %d argument(s): %s", c.Command.Name, n, c.Command.ArgsUsage)
	}

	return nil
}
