package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rawbytedev/charconv/internal/config"
	"github.com/rawbytedev/charconv/internal/report"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const (
	configArg     = "config"
	logLevelArg   = "log-level"
	metricsArg    = "metrics-file"
	memprofileArg = "memprofile"
)

// env is the state shared by the commands of one run.
type env struct {
	stdin   io.Reader
	stdout  io.Writer
	log     *logrus.Logger
	rep     report.Reporter
	cfg     *config.Config
	metrics *metrics
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	log := logrus.New()
	log.SetOutput(stderr)
	e := &env{
		stdin:   stdin,
		stdout:  stdout,
		log:     log,
		rep:     report.Logrus(logrus.NewEntry(log)),
		cfg:     config.Default(),
		metrics: newMetrics(),
	}

	app := cli.NewApp()
	app.Name = "charconv"
	app.Usage = "convert numbers between text forms and pack them into frames"
	app.Reader = stdin
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:      configArg,
			Aliases:   []string{"c"},
			Usage:     "TOML or YAML file with default settings",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  logLevelArg,
			Usage: "log level: trace, debug, info, warn, error, fatal or panic",
		},
		&cli.StringFlag{
			Name:      metricsArg,
			Usage:     "write prometheus counters to this file on exit",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      memprofileArg,
			Usage:     "write a heap profile to this file on exit",
			TakesFile: true,
		},
	}
	app.Commands = []*cli.Command{
		e.convertCommand(),
		e.frameCommand(),
	}
	app.Before = e.before
	app.After = e.after
	return app
}

func (e *env) before(c *cli.Context) error {
	if path := c.String(configArg); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		e.cfg = cfg
	}
	levelName := e.cfg.Log.Level
	if c.IsSet(logLevelArg) {
		levelName = c.String(logLevelArg)
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return err
	}
	e.log.SetLevel(level)
	e.log.SetFormatter(formatterFor(e.log.Out))
	if c.String(memprofileArg) != "" {
		runtime.MemProfileRate = 1
	}
	return nil
}

// formatterFor uses colored text on a terminal and JSON otherwise.
func formatterFor(w io.Writer) logrus.Formatter {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &logrus.TextFormatter{FullTimestamp: true, ForceColors: true}
	}
	return &logrus.JSONFormatter{}
}

func (e *env) after(c *cli.Context) error {
	if path := c.String(metricsArg); path != "" {
		if err := prometheus.WriteToTextfile(path, e.metrics.registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		e.log.WithField("file", path).Debug("wrote metrics")
	}
	if path := c.String(memprofileArg); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("write heap profile: %w", err)
		}
	}
	return nil
}
