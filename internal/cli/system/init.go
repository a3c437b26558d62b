package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/chairside/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing local storage first. This also signs you out."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.Printf("Deleted existing storage at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Ctx()); err != nil {
		return err
	}
	ctx.Printf("Initialized chairside storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
