package admin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

type AdminCmd struct {
	Users     UsersCmd     `cmd:"" help:"Manage user accounts."`
	Logs      LogsCmd      `cmd:"" help:"Show recent activity logs."`
	Dashboard DashboardCmd `cmd:"" help:"Show clinic statistics."`
}

type UsersCmd struct {
	List   UserListCmd   `cmd:"" help:"List users." default:"1"`
	Add    UserAddCmd    `cmd:"" help:"Create a user."`
	Edit   UserEditCmd   `cmd:"" help:"Edit a user."`
	Delete UserDeleteCmd `cmd:"" help:"Delete a user."`
}

type UserListCmd struct {
	Role string `help:"Only show users holding this role, e.g. ROLE_DENTIST."`
}

func (c *UserListCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Require(constants.RoleAdmin); err != nil {
		return err
	}

	users, err := ctx.API.ListUsers(ctx.Ctx())
	if err != nil {
		return ctx.Check(fmt.Errorf("failed to load users: %w", err))
	}

	var rows [][]string
	for _, u := range users {
		if c.Role != "" && !u.Roles.Has(c.Role) {
			continue
		}
		rows = append(rows, []string{u.ID, u.Username, u.DisplayName(), u.Email, u.Roles.String()})
	}
	if len(rows) == 0 {
		ctx.Println("No users found")
		return nil
	}

	ctx.Println(renderTable([]string{"ID", "Username", "Name", "Email", "Roles"}, rows))
	return nil
}

type UserAddCmd struct {
	Username  string   `arg:"" help:"Username."`
	Password  string   `required:"" help:"Initial password."`
	Email     string   `help:"Email address."`
	FirstName string   `name:"first-name" help:"First name."`
	LastName  string   `name:"last-name" help:"Last name."`
	Role      []string `help:"Roles to grant (repeatable)." default:"ROLE_PATIENT"`
}

func (c *UserAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Require(constants.RoleAdmin); err != nil {
		return err
	}
	if err := checkRoles(c.Role); err != nil {
		return err
	}

	u, err := ctx.API.CreateUser(ctx.Ctx(), models.UserRequest{
		Username:  strings.TrimSpace(c.Username),
		Password:  c.Password,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Roles:     models.NewRoles(c.Role...),
	})
	if err != nil {
		return ctx.Check(err)
	}
	ctx.Printf("✓ Created user %s (ID: %s)\n", u.Username, u.ID)
	return nil
}

type UserEditCmd struct {
	ID        string   `arg:"" help:"User ID."`
	Email     string   `help:"New email address."`
	FirstName string   `name:"first-name" help:"New first name."`
	LastName  string   `name:"last-name" help:"New last name."`
	Role      []string `help:"Replace roles (repeatable)."`
}

func (c *UserEditCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Require(constants.RoleAdmin); err != nil {
		return err
	}

	users, err := ctx.API.ListUsers(ctx.Ctx())
	if err != nil {
		return ctx.Check(fmt.Errorf("failed to load users: %w", err))
	}
	var current *models.User
	for i := range users {
		if users[i].ID == c.ID {
			current = &users[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("user not found: %s", c.ID)
	}

	req := models.UserRequest{
		Username:  current.Username,
		Email:     current.Email,
		FirstName: current.FirstName,
		LastName:  current.LastName,
		Phone:     current.Phone,
		Roles:     current.Roles,
	}
	if c.Email != "" {
		req.Email = c.Email
	}
	if c.FirstName != "" {
		req.FirstName = c.FirstName
	}
	if c.LastName != "" {
		req.LastName = c.LastName
	}
	if len(c.Role) > 0 {
		if err := checkRoles(c.Role); err != nil {
			return err
		}
		// keep whatever encoding the server sent
		req.Roles = models.Roles{Values: c.Role, Encoded: current.Roles.Encoded}
	}

	if _, err := ctx.API.UpdateUser(ctx.Ctx(), c.ID, req); err != nil {
		return ctx.Check(err)
	}
	ctx.Printf("✓ Updated user %s\n", c.ID)
	return nil
}

type UserDeleteCmd struct {
	ID string `arg:"" help:"User ID."`
}

func (c *UserDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Require(constants.RoleAdmin); err != nil {
		return err
	}
	if err := ctx.API.DeleteUser(ctx.Ctx(), c.ID); err != nil {
		return ctx.Check(fmt.Errorf("failed to delete user: %w", err))
	}
	ctx.Printf("✓ Deleted user %s\n", c.ID)
	return nil
}

type LogsCmd struct {
	Limit int `short:"n" help:"Number of entries to show." default:"50"`
}

func (c *LogsCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Require(constants.RoleAdmin); err != nil {
		return err
	}

	logs, err := ctx.API.ActivityLogs(ctx.Ctx(), c.Limit)
	if err != nil {
		return ctx.Check(fmt.Errorf("failed to load activity logs: %w", err))
	}
	if len(logs) == 0 {
		ctx.Println("No activity recorded")
		return nil
	}

	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			l.Timestamp.In(ctx.Clock().Location()).Format("2006-01-02 15:04"),
			l.Username,
			l.Role,
			l.Action,
			l.TargetData,
		})
	}
	ctx.Println(renderTable([]string{"When", "User", "Role", "Action", "Target"}, rows))
	return nil
}

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Require(constants.RoleAdmin); err != nil {
		return err
	}

	stats, err := ctx.API.Dashboard(ctx.Ctx())
	if err != nil {
		return ctx.Check(fmt.Errorf("failed to load dashboard: %w", err))
	}
	ctx.Println(RenderStats(stats))
	return nil
}

// RenderStats formats dashboard counters as a two-column table
func RenderStats(s models.DashboardStats) string {
	rows := [][]string{
		{"Patients", fmt.Sprint(s.TotalPatients)},
		{"Dentists", fmt.Sprint(s.TotalDentists)},
		{"Appointments", fmt.Sprint(s.TotalAppointments)},
		{"  pending", fmt.Sprint(s.Pending)},
		{"  confirmed", fmt.Sprint(s.Confirmed)},
		{"  cancelled", fmt.Sprint(s.Cancelled)},
		{"  completed", fmt.Sprint(s.Completed)},
		{"Emergencies", fmt.Sprint(s.Emergency)},
	}
	return renderTable([]string{"Metric", "Count"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func checkRoles(roles []string) error {
	for _, r := range roles {
		switch r {
		case constants.RoleAdmin, constants.RoleDentist, constants.RolePatient:
		default:
			return errors.NewValidation("role", "unknown role %q (expected ROLE_ADMIN, ROLE_DENTIST or ROLE_PATIENT)", r)
		}
	}
	return nil
}
