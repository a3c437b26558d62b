package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	m := tui.NewModel(ctx.Ctx(), tui.Deps{
		API:      ctx.API,
		Sessions: ctx.Sessions,
		Gate:     ctx.Gate,
		Now:      ctx.Clock,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx.Ctx()))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	if fm, ok := final.(tui.Model); ok {
		return fm.Err()
	}
	return nil
}
