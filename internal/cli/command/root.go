package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/tokmint/internal/cli/config"
	"github.com/yndnr/tokmint/internal/cli/output"
	"github.com/yndnr/tokmint/internal/infra/buildinfo"
	"github.com/yndnr/tokmint/internal/telemetry/logger"
)

const cliConfigKey = "cliConfig"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:     "tokmint-cli",
		Usage:    "Generate and inspect tokmint tokens locally",
		Version:  buildinfo.String(),
		Flags:    globalFlags(),
		Metadata: map[string]any{},
		Commands: []*cli.Command{
			GenerateCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: func(c *cli.Context) error {
			cfg, err := cliconfig.Load(c.String("cli-config"))
			if err != nil {
				return err
			}
			c.App.Metadata[cliConfigKey] = cfg
			return nil
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			EnvVars: []string{"TOKMINT_OUTPUT"},
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log engine activity to stderr",
		},
		&cli.StringFlag{
			Name:  "cli-config",
			Usage: "Path to CLI preferences file",
			Value: cliconfig.DefaultConfigPath(),
		},
	}
}

// configFlag is the --config flag shared by commands that read a server
// configuration file.
func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the tokmint server configuration file",
		EnvVars: []string{"TOKMINT_CONFIG"},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Output  output.Format
	Wide    bool
	Verbose bool
}

// ParseGlobalFlags extracts global flags from context, falling back to
// the CLI preferences file for anything not given on the command line.
func ParseGlobalFlags(c *cli.Context) (*GlobalFlags, error) {
	prefs := cliPrefs(c)

	raw := c.String("output")
	if !c.IsSet("output") {
		raw = prefs.DefaultOutput
	}
	format, err := output.ParseFormat(raw)
	if err != nil {
		return nil, err
	}

	return &GlobalFlags{
		Output:  format,
		Wide:    c.Bool("wide") || prefs.Wide,
		Verbose: c.Bool("verbose"),
	}, nil
}

func cliPrefs(c *cli.Context) *cliconfig.CLIConfig {
	if c.App != nil {
		if cfg, ok := c.App.Metadata[cliConfigKey].(*cliconfig.CLIConfig); ok {
			return cfg
		}
	}
	return cliconfig.Default()
}

// configPath returns the server configuration file to use.
func configPath(c *cli.Context) (string, error) {
	if path := c.String("config"); path != "" {
		return path, nil
	}
	if path := cliPrefs(c).ConfigFile; path != "" {
		return path, nil
	}
	return "", cli.Exit("no configuration file: pass --config or set config_file in "+c.String("cli-config"), 2)
}

// render writes data to the app's writer in the selected format.
func render(c *cli.Context, flags *GlobalFlags, data any) error {
	return output.NewFormatter(flags.Output, flags.Wide).Format(c.App.Writer, data)
}

// newLogger returns a console logger on the app's error writer. Only
// warnings are shown unless --verbose is set.
func newLogger(c *cli.Context, flags *GlobalFlags) (logger.Logger, error) {
	level := "warn"
	if flags.Verbose {
		level = "debug"
	}
	var w io.Writer = c.App.ErrWriter
	if w == nil {
		w = io.Discard
	}
	l, err := logger.New(logger.Config{Level: level, Format: "text", Output: w})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return l, nil
}
