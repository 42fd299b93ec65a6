package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tokmint/internal/cli/output"
	"github.com/yndnr/tokmint/internal/server/config"
	"github.com/yndnr/tokmint/internal/server/reload"
)

// ScopeRow describes one effective scope in command output.
type ScopeRow struct {
	Location string   `json:"location" yaml:"location"`
	OnlyFor  string   `json:"only_for,omitempty" yaml:"only_for,omitempty"`
	Tokens   int      `json:"tokens" yaml:"tokens"`
	Names    string   `json:"names" yaml:"names"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty" table:"wide"`
}

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect a tokmint server configuration file",
		Subcommands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Check a configuration file and report every problem",
				Flags:  []cli.Flag{configFlag()},
				Action: configValidate,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration with secrets masked",
				Flags:  []cli.Flag{configFlag()},
				Action: configShow,
			},
			{
				Name:   "scopes",
				Usage:  "List scopes with inherited token definitions",
				Flags:  []cli.Flag{configFlag()},
				Action: configScopes,
			},
		},
	}
}

func configValidate(c *cli.Context) error {
	file, err := configPath(c)
	if err != nil {
		return err
	}

	cfg, err := config.Load(file)
	if err != nil {
		return err
	}

	tokens := 0
	for _, s := range cfg.Scopes {
		tokens += len(s.Tokens)
	}
	fmt.Fprintf(c.App.Writer, "%s: OK (%d scopes, %d token definitions)\n", file, len(cfg.Scopes), tokens)
	return nil
}

func configShow(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	// Nested configuration reads poorly as a table.
	if flags.Output == output.FormatTable {
		flags.Output = output.FormatYAML
	}

	file, err := configPath(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load(file)
	if err != nil {
		return err
	}

	return render(c, flags, config.Sanitize(cfg))
}

func configScopes(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	file, err := configPath(c)
	if err != nil {
		return err
	}
	log, err := newLogger(c, flags)
	if err != nil {
		return err
	}

	cfg, err := config.Load(file)
	if err != nil {
		return err
	}
	scopes, err := reload.BuildScopes(cfg, log)
	if err != nil {
		return err
	}

	rows := make([]ScopeRow, 0, len(scopes))
	for _, s := range scopes {
		names := make([]string, 0, len(s.Config.Tokens))
		for _, def := range s.Config.Tokens {
			names = append(names, def.Name)
		}
		row := ScopeRow{
			Location: s.Location,
			Tokens:   len(names),
			Names:    strings.Join(names, ","),
			Warnings: s.Warnings(),
		}
		if s.Config.URLPattern != nil {
			row.OnlyFor = s.Config.URLPattern.String()
		}
		rows = append(rows, row)
	}
	return render(c, flags, rows)
}
