package command

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"coinboard/internal/infrastructure/configloader"
	"coinboard/internal/pkg/logger"

	clipkg "github.com/urfave/cli"
	"go.uber.org/zap"
)

// Client holds what the command actions share.
type Client struct {
	Writer     io.Writer
	AppFactory AppFactory
	Config     *configloader.Config
	Logger     *zap.Logger
}

func (cli *Client) errorOut(err error) error {
	if err != nil {
		return clipkg.NewExitError(err.Error(), 1)
	}
	return nil
}

// loadConfig is the app-level Before hook: it reads --config and starts logging.
func (cli *Client) loadConfig(c *clipkg.Context) error {
	if cli.Config != nil {
		return nil
	}
	cfg, err := configloader.Load(c.GlobalString("config"))
	if err != nil {
		return cli.errorOut(err)
	}
	zapLogger, err := logger.Init(loggerOptions(cfg.Logging))
	if err != nil {
		return cli.errorOut(err)
	}
	cli.Config = cfg
	cli.Logger = zapLogger
	return nil
}

func loggerOptions(cfg configloader.LoggingConfig) logger.Options {
	return logger.Options{
		Level:      cfg.Level,
		File:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Console:    cfg.Console,
	}
}

func (cli *Client) newApplication() (*Application, error) {
	if cli.Logger == nil {
		cli.Logger = zap.NewNop()
	}
	return cli.AppFactory.NewApplication(cli.Config, cli.Logger)
}

func (cli *Client) renderTable(headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(cli.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
