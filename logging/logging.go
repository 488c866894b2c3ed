package logging

import (
	"log/slog"

	"github.com/iand/pontium/hlog"
	"github.com/kortschak/utter"
	"github.com/urfave/cli/v2"
)

var Flags = []cli.Flag{
	&cli.BoolFlag{
		Name:        "verbose",
		Aliases:     []string{"v"},
		Usage:       "Set logging level more verbose to include info level logs",
		Value:       false,
		Destination: &Opts.Verbose,
	},

	&cli.BoolFlag{
		Name:        "veryverbose",
		Aliases:     []string{"vv"},
		Usage:       "Set logging level more verbose to include debug level logs",
		Destination: &Opts.VeryVerbose,
	},

	&cli.StringSliceFlag{
		Name:        "log-diseases",
		Usage:       "Always emit logging for these diseases, comma separated",
		Destination: &Opts.LogDiseases,
	},
}

var Opts struct {
	Verbose     bool
	VeryVerbose bool
	LogDiseases cli.StringSlice
}

func Setup() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelWarn)
	if Opts.Verbose {
		logLevel.Set(slog.LevelInfo)
	}
	if Opts.VeryVerbose {
		logLevel.Set(slog.LevelDebug)
	}

	h := new(hlog.Handler)
	h = h.WithLevel(logLevel.Level())
	for _, name := range Opts.LogDiseases.Value() {
		h = h.WithAttrLevel(slog.String("disease", name), slog.LevelDebug)
	}

	slog.SetDefault(slog.New(h))
}

var (
	Debug = slog.Debug
	Info  = slog.Info
	Warn  = slog.Warn
)

// Sdump returns a readable rendering of v.
func Sdump(v any) string {
	return utter.Sdump(v)
}
