package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/chairside/internal/cli"
	"github.com/julianstephens/chairside/internal/forms"
	"github.com/julianstephens/chairside/internal/logger"
	"github.com/julianstephens/chairside/internal/models"
	"github.com/julianstephens/chairside/internal/session"
)

type LoginCmd struct {
	Username string `short:"u" help:"Username. Prompted when missing."`
	Password string `short:"p" help:"Password. Prompted when missing." env:"CHAIRSIDE_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	creds := forms.Login{Username: c.Username, Password: c.Password}
	if creds.Username == "" || creds.Password == "" {
		if err := forms.NewLoginForm(&creds).Run(); err != nil {
			return err
		}
	}

	resp, err := ctx.API.Login(ctx.Ctx(), models.Credentials{
		Username: strings.TrimSpace(creds.Username),
		Password: creds.Password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := ctx.Sessions.Set(ctx.Ctx(), session.Session{Token: resp.Token}); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if err := ctx.Sessions.SetUser(ctx.Ctx(), resp.User); err != nil {
		return fmt.Errorf("failed to store user details: %w", err)
	}
	logger.Info("Logged in", "user", resp.User.Username, "backend", ctx.Backend)

	ctx.Printf("✓ Logged in as %s (%s)\n", resp.User.DisplayName(), resp.User.Roles)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Sessions.Clear(ctx.Ctx()); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	ctx.Println("✓ Logged out")
	return nil
}

type RegisterCmd struct {
	Username  string `required:"" help:"Username."`
	Email     string `required:"" help:"Email address."`
	Password  string `required:"" help:"Password." env:"CHAIRSIDE_PASSWORD"`
	FirstName string `name:"first-name" help:"First name."`
	LastName  string `name:"last-name" help:"Last name."`
	Phone     string `help:"Phone number."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	err := ctx.API.Register(ctx.Ctx(), models.Registration{
		Username:  strings.TrimSpace(c.Username),
		Email:     strings.TrimSpace(c.Email),
		Password:  c.Password,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	ctx.Printf("✓ Registered %s. Run 'chairside login' to sign in.\n", c.Username)
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Require()
	if err != nil {
		return err
	}

	ctx.Printf("User:  %s (%s)\n", user.DisplayName(), user.Username)
	ctx.Printf("ID:    %s\n", user.ID)
	if user.Email != "" {
		ctx.Printf("Email: %s\n", user.Email)
	}
	ctx.Printf("Roles: %s\n", user.Roles)

	sess, err := ctx.Sessions.Get(ctx.Ctx())
	if err != nil {
		return nil
	}
	if claims, ok := session.Inspect(sess.Token); ok && !claims.ExpiresAt.IsZero() {
		left := claims.ExpiresAt.Sub(ctx.Clock()).Round(time.Minute)
		ctx.Printf("Token expires %s (in %s)\n", claims.ExpiresAt.In(ctx.Clock().Location()).Format(time.RFC1123), left)
	}
	return nil
}

type PasswordCmd struct {
	Current string `help:"Current password." env:"CHAIRSIDE_PASSWORD"`
	New     string `name:"new" help:"New password."`
	Confirm string `help:"Repeat the new password."`
}

func (c *PasswordCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Require(); err != nil {
		return err
	}

	pc := models.PasswordChange{
		CurrentPassword: c.Current,
		NewPassword:     c.New,
		ConfirmPassword: c.Confirm,
	}
	if pc.CurrentPassword == "" || pc.NewPassword == "" || pc.ConfirmPassword == "" {
		if err := forms.NewPasswordForm(&pc).Run(); err != nil {
			return err
		}
	}

	if err := ctx.Check(ctx.API.ChangePassword(ctx.Ctx(), pc)); err != nil {
		return err
	}
	ctx.Println("✓ Password updated")
	return nil
}
