package poolctl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/poolctl/session"
)

// ErrNotLoggedIn is returned by commands that need a saved token.
var ErrNotLoggedIn = errors.New("not logged in; run 'poolctl login' first")

const usage = `usage: poolctl [-s url] [-g addr] [-f session] [-t seconds] <command>

commands:
  bootstrap   create the first superuser
  login       obtain an access token and save it
  logout      forget the saved token
  whoami      show the logged-in account
  refresh     replace the saved token with a fresh one
  token       print the saved token
  health      check that the server is up`

type App struct {
	config  *Config
	api     *APIClient
	session *session.Store
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, c *Config, in io.Reader, out io.Writer) (*App, error) {
	s, err := session.Open(ctx, c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return &App{
		config:  c,
		api:     NewAPIClient(c.ServerURL, c.Timeout),
		session: s,
		reader:  bufio.NewReader(in),
		out:     out,
	}, nil
}

func (a *App) Close() error {
	return a.session.Close()
}

// Run executes one command.
func (a *App) Run(ctx context.Context, cmd string) error {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	switch cmd {
	case "bootstrap":
		return a.Bootstrap(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		if err := a.session.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Logged out")
		return nil
	case "whoami":
		return a.WhoAmI(ctx)
	case "refresh":
		return a.Refresh(ctx)
	case "token":
		token, err := a.token(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, token)
		return nil
	case "health":
		if err := a.api.Health(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "OK")
		return nil
	case "", "help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) Bootstrap(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	u, err := a.api.Bootstrap(ctx, email, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Superuser %s created (id=%d)\n", u.Username, u.ID)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}

	t, err := a.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.session.Save(ctx, map[string]string{
		session.KeyAccessToken: t.AccessToken,
		session.KeyUsername:    username,
		session.KeyServer:      a.config.ServerURL,
	}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", username)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}
	id, err := dialIdentity(a.config.GRPCAddr)
	if err != nil {
		return err
	}
	defer id.Close()

	u, err := id.WhoAmI(ctx, token)
	if err != nil {
		return err
	}
	role := "user"
	if u.IsSuperuser {
		role = "superuser"
	}
	fmt.Fprintf(a.out, "%s <%s> id=%d %s\n", u.Username, u.Email, u.ID, role)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}
	id, err := dialIdentity(a.config.GRPCAddr)
	if err != nil {
		return err
	}
	defer id.Close()

	fresh, err := id.Refresh(ctx, token)
	if err != nil {
		return err
	}
	if err := a.session.Save(ctx, map[string]string{session.KeyAccessToken: fresh}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Token refreshed")
	return nil
}

func (a *App) token(ctx context.Context) (string, error) {
	token, err := a.session.Get(ctx, session.KeyAccessToken)
	if errors.Is(err, common.ErrorNotFound) {
		return "", ErrNotLoggedIn
	}
	return token, err
}
