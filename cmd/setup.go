package main

import (
	"context"

	"github.com/finallyfriday/encore/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	return r.writePlain("Wrote example config to %s. Fill in your API credentials before running commands.\n", path)
}
