package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bookfair/pkg/api"
	bferrors "github.com/matzehuels/bookfair/pkg/errors"
	"github.com/matzehuels/bookfair/pkg/session"
)

// authTimeout bounds a login or registration round trip.
const authTimeout = 30 * time.Second

// authCommands returns the login, register, logout and whoami commands.
func (c *CLI) authCommands() []*cobra.Command {
	return []*cobra.Command{
		c.loginCommand(),
		c.registerCommand(),
		c.logoutCommand(),
		c.whoamiCommand(),
	}
}

// loginCommand creates the login command.
func (c *CLI) loginCommand() *cobra.Command {
	var user, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your username or email",
		Long: `Sign in to the bookfair backend.

Missing credentials are read from standard input. The token is kept in the
local store until it expires or you run 'bookfair logout'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if e.sess != nil {
				printInfo("Already logged in as %s", e.sess.User.DisplayName())
				printNextStep("Sign in as someone else", appName+" logout")
				return nil
			}

			p := newPrompter(c.in)
			if user == "" {
				user = p.ask("Username or email")
			}
			if password == "" {
				password = p.ask("Password")
			}

			ctx, cancel := context.WithTimeout(ctx, authTimeout)
			defer cancel()

			spinner := newSpinnerWithContext(ctx, "Signing in...")
			spinner.Start()
			res, err := e.client.Login(ctx, user, password)
			if err != nil {
				spinner.StopWithError("Login failed")
				return authError(err)
			}
			spinner.Stop()

			sess, err := saveSession(ctx, e.sessions, res)
			if err != nil {
				return err
			}
			printSuccess("Logged in as %s", sess.User.DisplayName())
			printDetail("Session expires %s", sess.ExpiresAt.Format("Jan 2, 2006"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}

// registerCommand creates the register command.
func (c *CLI) registerCommand() *cobra.Command {
	var form bferrors.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a vendor account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			p := newPrompter(c.in)
			fields := []struct {
				label string
				dst   *string
			}{
				{"Full name", &form.FullName},
				{"Email", &form.Email},
				{"Phone number", &form.PhoneNumber},
				{"Company name", &form.CompanyName},
				{"Password", &form.Password},
				{"Confirm password", &form.ConfirmPassword},
			}
			for _, f := range fields {
				if *f.dst == "" {
					*f.dst = p.ask(f.label)
				}
			}
			if err := bferrors.ValidateRegistration(form); err != nil {
				printError("%s", bferrors.UserMessage(err))
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, authTimeout)
			defer cancel()

			spinner := newSpinnerWithContext(ctx, "Creating account...")
			spinner.Start()
			res, err := e.client.Register(ctx, form)
			if err != nil {
				spinner.StopWithError("Registration failed")
				return authError(err)
			}
			spinner.Stop()

			sess, err := saveSession(ctx, e.sessions, res)
			if err != nil {
				return err
			}
			printSuccess("Welcome, %s", sess.User.DisplayName())
			printNextStep("Browse events", appName+" events")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.FullName, "name", "", "full name")
	f.StringVar(&form.Email, "email", "", "email address")
	f.StringVar(&form.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&form.CompanyName, "company", "", "company or publisher name")
	f.StringVar(&form.Password, "password", "", "password")
	f.StringVar(&form.ConfirmPassword, "confirm", "", "password again")
	return cmd
}

// logoutCommand creates the logout command.
func (c *CLI) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.sessions.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			printSuccess("Logged out")
			return nil
		},
	}
}

// whoamiCommand creates the whoami command.
func (c *CLI) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			sess, err := e.requireLogin()
			if err != nil {
				return err
			}
			printUser(sess)
			return nil
		},
	}
}

// =============================================================================
// Session Helpers
// =============================================================================

func saveSession(ctx context.Context, store *session.Store, res *api.AuthResult) (*session.Session, error) {
	sess := session.FromAuth(res)
	if err := store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func printUser(sess *session.Session) {
	u := sess.User
	if u == nil {
		u = &api.User{}
	}
	printSuccess("Bookfair Session")
	printKeyValue("Name", u.DisplayName())
	if u.Email != "" {
		printKeyValue("Email", u.Email)
	}
	if u.CompanyName != "" {
		printKeyValue("Company", u.CompanyName)
	}
	if u.Role != "" {
		printKeyValue("Role", u.Role)
	}
	printKeyValue("Logged in", sess.CreatedAt.Format("Jan 2, 2006"))
	printKeyValue("Expires", sess.ExpiresAt.Format("Jan 2, 2006"))
}

// authError prints the backend's message and returns err for the exit code.
func authError(err error) error {
	printError("%s", bferrors.UserMessage(err))
	return err
}

// =============================================================================
// Prompts
// =============================================================================

// prompter reads answers line by line.
type prompter struct {
	r *bufio.Reader
}

func newPrompter(r io.Reader) *prompter {
	return &prompter{r: bufio.NewReader(r)}
}

// ask prints label and returns the trimmed answer, or "" at end of input.
func (p *prompter) ask(label string) string {
	printInline("%s: ", label)
	line, _ := p.r.ReadString('\n')
	return strings.TrimSpace(line)
}
