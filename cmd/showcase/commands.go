package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/showcase-labs/showcase-console/internal/apiclient"
	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	apperrors "github.com/showcase-labs/showcase-console/internal/errors"
	"github.com/showcase-labs/showcase-console/internal/service"
)

type loginOptions struct {
	Email    string
	Password string
	Admin    bool
}

type signupOptions struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type profileOptions struct {
	Name  *string
	Image *string
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parseLoginFlags(args []string) (loginOptions, error) {
	fs := newFlagSet("login")
	var opts loginOptions
	fs.StringVar(&opts.Email, "email", "", "Account email (required)")
	fs.StringVar(&opts.Password, "password", "", "Account password; read from stdin when omitted")
	fs.BoolVar(&opts.Admin, "admin", false, "Require the admin role, like the admin login form")
	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}
	if strings.TrimSpace(opts.Email) == "" {
		return loginOptions{}, errors.New("--email is required")
	}
	return opts, nil
}

func parseSignupFlags(args []string) (signupOptions, error) {
	fs := newFlagSet("signup")
	opts := signupOptions{Role: string(domainauth.RoleUser)}
	fs.StringVar(&opts.Name, "name", "", "Full name (required)")
	fs.StringVar(&opts.Email, "email", "", "Account email (required)")
	fs.StringVar(&opts.Password, "password", "", "Account password; read from stdin when omitted")
	fs.StringVar(&opts.Role, "role", opts.Role, "Requested role: user, developer or admin")
	if err := fs.Parse(args); err != nil {
		return signupOptions{}, err
	}
	if strings.TrimSpace(opts.Email) == "" {
		return signupOptions{}, errors.New("--email is required")
	}
	return opts, nil
}

func parseProfileFlags(args []string) (profileOptions, error) {
	fs := newFlagSet("profile")
	name := fs.String("name", "", "New display name")
	image := fs.String("image", "", "New profile image URL; empty clears it")
	if err := fs.Parse(args); err != nil {
		return profileOptions{}, err
	}

	var opts profileOptions
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			opts.Name = name
		case "image":
			opts.Image = image
		}
	})
	if opts.Name == nil && opts.Image == nil {
		return profileOptions{}, errors.New("nothing to change: pass --name and/or --image")
	}
	return opts, nil
}

// readPassword returns the flag value, or the first line of in.
func readPassword(cmdCtx *commandContext, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if err := writef(os.Stderr, "Password: "); err != nil {
		return "", err
	}
	line, err := bufio.NewReader(cmdCtx.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}
	password, err := readPassword(cmdCtx, opts.Password)
	if err != nil {
		return err
	}
	svc, err := cmdCtx.Services()
	if err != nil {
		return err
	}

	res, err := svc.Session.Login(cmdCtx.Ctx, service.LoginInput{Email: opts.Email, Password: password})
	if err != nil {
		return describeCredentialError(err)
	}
	if opts.Admin && res.User.Role != domainauth.RoleAdmin {
		// The session stays; only the admin check fails.
		return errors.New("access denied: admin privileges required")
	}
	return writef(cmdCtx.Out, "Logged in as %s <%s> (%s). Start at %s\n",
		displayName(res.User), res.User.Email, res.User.Role, landingFor(res.User, opts.Admin))
}

func runSignup(cmdCtx *commandContext, args []string) error {
	opts, err := parseSignupFlags(args)
	if err != nil {
		return err
	}
	role, err := domainauth.ParseRole(opts.Role)
	if err != nil {
		return err
	}
	password, err := readPassword(cmdCtx, opts.Password)
	if err != nil {
		return err
	}
	svc, err := cmdCtx.Services()
	if err != nil {
		return err
	}

	res, err := svc.Session.Signup(cmdCtx.Ctx, service.SignupInput{
		Name:     opts.Name,
		Email:    opts.Email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return describeCredentialError(err)
	}
	return writef(cmdCtx.Out, "Welcome, %s. Signed up as %s. Start at %s\n",
		displayName(res.User), res.User.Role, landingFor(res.User, false))
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	svc, err := cmdCtx.Services()
	if err != nil {
		return err
	}
	if err := svc.Session.Logout(cmdCtx.Ctx); err != nil {
		return err
	}
	return writeln(cmdCtx.Out, "Logged out.")
}

func runWhoami(cmdCtx *commandContext, _ []string) error {
	svc, err := cmdCtx.Services()
	if err != nil {
		return err
	}
	u, err := svc.Credentials.GetMe(cmdCtx.Ctx)
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return errors.New("not logged in")
	case apiclient.IsUnauthorized(err):
		return errors.New("session expired; log in again")
	case err != nil:
		return err
	}
	return renderUser(cmdCtx.Out, u)
}

func runStatus(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("status")
	asJSON := fs.Bool("json", false, "Print the session as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	svc, err := cmdCtx.Services()
	if err != nil {
		return err
	}

	snap := svc.Session.Snapshot()
	if *asJSON {
		enc := json.NewEncoder(cmdCtx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"loading":       snap.Loading,
			"authenticated": snap.Authenticated(),
			"user":          snap.User,
		})
	}
	if snap.User == nil {
		return writeln(cmdCtx.Out, "Not logged in.")
	}
	return renderUser(cmdCtx.Out, *snap.User)
}

func runProfile(cmdCtx *commandContext, args []string) error {
	opts, err := parseProfileFlags(args)
	if err != nil {
		return err
	}
	svc, err := cmdCtx.Services()
	if err != nil {
		return err
	}
	if !svc.Session.Snapshot().Authenticated() {
		return errors.New("not logged in")
	}

	u, err := svc.Credentials.UpdateProfile(cmdCtx.Ctx, service.ProfilePatch{Name: opts.Name, ProfileImage: opts.Image})
	if err != nil {
		if apperrors.IsValidation(err) {
			return errors.New(apperrors.GetMessage(err))
		}
		return err
	}
	svc.Session.UpdateUser(u)
	if err := writeln(cmdCtx.Out, "Profile updated on this device."); err != nil {
		return err
	}
	return renderUser(cmdCtx.Out, u)
}

func runResetPassword(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("reset-password")
	email := fs.String("email", "", "Account email (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	svc, err := cmdCtx.Services()
	if err != nil {
		return err
	}
	ack, err := svc.Credentials.RequestPasswordReset(cmdCtx.Ctx, *email)
	if err != nil {
		return errors.New(apperrors.GetMessage(err))
	}
	return writef(cmdCtx.Out, "Reset requested for %s at %s.\n", ack.Email, ack.RequestedAt.Format("2006-01-02 15:04:05 MST"))
}

// describeCredentialError turns backend rejections into a one-line message.
func describeCredentialError(err error) error {
	if apperrors.IsValidation(err) {
		return fmt.Errorf("%s: %s", apperrors.GetField(err), apperrors.GetMessage(err))
	}
	switch apiclient.CodeOf(err) {
	case apiclient.CodeEmailNotFound:
		return errors.New("no account with that email")
	case apiclient.CodePasswordIncorrect:
		return errors.New("incorrect password")
	case apiclient.CodeEmailTaken:
		return errors.New("email already registered")
	}
	if msg := apiclient.MessageOf(err); msg != "" {
		return fmt.Errorf("backend rejected the request: %s", msg)
	}
	return err
}

func displayName(u domainauth.User) string {
	if u.Name != "" {
		return u.Name
	}
	return string(u.ID)
}

func landingFor(u domainauth.User, admin bool) string {
	if admin {
		return domainauth.AdminDashboardPath
	}
	return domainauth.LandingPath(u.Role)
}

func renderUser(w io.Writer, u domainauth.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", string(u.ID)},
		{"NAME", u.Name},
		{"EMAIL", u.Email},
		{"ROLE", string(u.Role)},
	}
	if u.ProfileImage != "" {
		rows = append(rows, [2]string{"IMAGE", u.ProfileImage})
	}
	for _, row := range rows {
		if err := writef(tw, "%s\t%s\n", row[0], row[1]); err != nil {
			return fmt.Errorf("write user row: %w", err)
		}
	}
	return tw.Flush()
}
