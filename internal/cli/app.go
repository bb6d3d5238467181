// Package cli implements todoctl, a small admin tool that registers users
// and issues access tokens directly against the todo database.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/todoapi/internal/flagx"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/shared"
)

// ErrUsage is returned for an unknown or missing command.
var ErrUsage = errors.New("usage: todoctl [server flags] register|login -email <email>")

// Accounts is implemented by services.UserService.
type Accounts interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type App struct {
	accounts Accounts
	in       *bufio.Reader
	fd       int
	out      io.Writer
}

// NewApp reads from in (whose descriptor is fd, used for echo-less input)
// and writes results to out.
func NewApp(accounts Accounts, in io.Reader, fd int, out io.Writer) *App {
	return &App{accounts: accounts, in: bufio.NewReader(in), fd: fd, out: out}
}

// Run executes the command found in args. Server flags in args are ignored.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := splitCommand(args)

	switch cmd {
	case "register":
		return a.withCredentials(rest, func(email string, password string) error {
			user, err := a.accounts.Register(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "registered %s (id %s)\n", user.Email, user.ID)
			return nil
		})
	case "login":
		return a.withCredentials(rest, func(email string, password string) error {
			token, err := a.accounts.Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, token)
			return nil
		})
	default:
		return ErrUsage
	}
}

func (a *App) withCredentials(args []string, fn func(email, password string) error) error {
	var email string
	fs := flag.NewFlagSet("todoctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&email, "email", "", "account email")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-email", "--email"})); err != nil {
		return err
	}
	if email == "" {
		return ErrUsage
	}

	pw, err := GetPassword(a.in, a.fd, a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(pw)

	return fn(email, string(pw))
}

// splitCommand returns the first register/login word and the arguments after it.
func splitCommand(args []string) (string, []string) {
	for i, arg := range args {
		if arg == "register" || arg == "login" {
			return arg, args[i+1:]
		}
	}
	return "", nil
}
