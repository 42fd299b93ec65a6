package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/tokmint/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			flags, err := ParseGlobalFlags(c)
			if err != nil {
				return err
			}
			return render(c, flags, buildinfo.Get())
		},
	}
}
