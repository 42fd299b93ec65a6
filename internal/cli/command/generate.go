package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tokmint/internal/core/service"
	"github.com/yndnr/tokmint/internal/server/config"
	"github.com/yndnr/tokmint/internal/server/reload"
)

// MaxRequests caps --count.
const MaxRequests = 1000

// TokenRow is one generated token in command output.
type TokenRow struct {
	Request int    `json:"request" yaml:"request"`
	Name    string `json:"name" yaml:"name"`
	Value   string `json:"value" yaml:"value"`
	Cached  bool   `json:"cached" yaml:"cached"`
	Header  string `json:"header,omitempty" yaml:"header,omitempty" table:"wide"`
	Scope   string `json:"scope" yaml:"scope" table:"wide"`
}

// GenerateCommand returns the generate command.
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate the tokens a request path would receive",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Request path",
				Value:   "/",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of simulated requests",
				Value:   1,
			},
			&cli.Int64Flag{
				Name:  "at",
				Usage: "Unix time of the first request (default: now)",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Clock advance between simulated requests",
			},
		},
		Action: generateAction,
	}
}

func generateAction(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}

	count := c.Int("count")
	if count < 1 || count > MaxRequests {
		return cli.Exit(fmt.Sprintf("--count must be between 1 and %d", MaxRequests), 2)
	}
	path := c.String("path")
	if path == "" || path[0] != '/' {
		return cli.Exit("--path must start with /", 2)
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
	registry := service.NewRegistry(scopes...)
	defer registry.Close()

	scope := registry.Lookup(path)
	if scope == nil {
		log.Warn("no scope covers path", "path", path)
		return render(c, flags, []TokenRow{})
	}

	now := time.Now()
	if c.IsSet("at") {
		now = time.Unix(c.Int64("at"), 0)
	}
	interval := c.Duration("interval")

	assembler := service.NewAssembler(service.WithLogger(log))
	rows := make([]TokenRow, 0, count*len(scope.Config.Tokens))
	for i := 0; i < count; i++ {
		results, err := assembler.Generate(c.Context, scope, path, now.Add(time.Duration(i)*interval))
		if err != nil {
			if len(results) == 0 {
				return err
			}
			log.Warn("some tokens were not generated", "request", i+1, "error", err)
		}
		for _, r := range results {
			rows = append(rows, TokenRow{
				Request: i + 1,
				Name:    r.Name,
				Value:   r.Value,
				Cached:  r.Cached,
				Header:  r.Header,
				Scope:   scope.Location,
			})
		}
	}

	return render(c, flags, rows)
}
