package services

import (
	"fmt"
	"strings"

	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
)

type ServiceCmd struct {
	List   ServiceListCmd   `cmd:"" help:"List dental services." default:"1"`
	Add    ServiceAddCmd    `cmd:"" help:"Add a service."`
	Delete ServiceDeleteCmd `cmd:"" help:"Delete a service."`
}

type ServiceListCmd struct {
	Dentist string `short:"d" help:"Only show services offered by this dentist."`
	ShowIDs bool   `help:"Show service IDs." name:"show-ids"`
}

func (c *ServiceListCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Require(); err != nil {
		return err
	}

	svcs, err := ctx.API.ListServices(ctx.Ctx(), c.Dentist)
	if err != nil {
		return ctx.Check(fmt.Errorf("failed to load services: %w", err))
	}
	if len(svcs) == 0 {
		ctx.Println("No services found")
		return nil
	}

	ctx.Println("Services:")
	for _, s := range svcs {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", s.ID)
		}
		ctx.Printf("  %s%s - $%.2f\n", s.Name, idStr, s.Price)
		if s.Description != "" {
			ctx.Printf("      %s\n", s.Description)
		}
	}
	return nil
}

type ServiceAddCmd struct {
	Name        string  `arg:"" help:"Service name."`
	Price       float64 `required:"" help:"Price."`
	Description string  `help:"Description."`
	Dentist     string  `help:"Dentist ID (admin only). Defaults to you."`
}

func (c *ServiceAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Require(constants.RoleDentist, constants.RoleAdmin)
	if err != nil {
		return err
	}

	svc := models.DentalService{
		DentistID:   user.ID,
		Name:        strings.TrimSpace(c.Name),
		Description: strings.TrimSpace(c.Description),
		Price:       c.Price,
	}
	if c.Dentist != "" {
		if !user.Roles.Has(constants.RoleAdmin) {
			return errors.ErrUnauthorized
		}
		svc.DentistID = c.Dentist
	}

	out, err := ctx.API.CreateService(ctx.Ctx(), svc)
	if err != nil {
		return ctx.Check(err)
	}
	ctx.Printf("✓ Added service %s", out.Name)
	if out.ID != "" {
		ctx.Printf(" (ID: %s)", out.ID)
	}
	ctx.Println()
	return nil
}

type ServiceDeleteCmd struct {
	ID string `arg:"" help:"Service ID."`
}

func (c *ServiceDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Require(constants.RoleDentist, constants.RoleAdmin); err != nil {
		return err
	}
	if err := ctx.API.DeleteService(ctx.Ctx(), c.ID); err != nil {
		return ctx.Check(fmt.Errorf("failed to delete service: %w", err))
	}
	ctx.Printf("✓ Deleted service %s\n", c.ID)
	return nil
}
