// Command agent is the terminal session client. It signs in against the
// API, keeps the session alive with heartbeats while the user is typing,
// and signs out after the configured period without input.
//
// Every line typed counts as activity. Commands:
//
//	whoami   show the signed-in user
//	logout   end the session and forget it
//	quit     exit, keeping the session for the next run
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/leadflow/leadflow-backend/internal/app"
	"github.com/leadflow/leadflow-backend/internal/client"
	"github.com/leadflow/leadflow-backend/internal/config"
	"github.com/leadflow/leadflow-backend/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "agent: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg, err := config.LoadAgent()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(cfg.StatePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	if cfg.Log.File == "" {
		cfg.Log.File = cfg.StatePath + ".log"
	}
	logger, closeLog, err := app.NewLogger(cfg.Log, "agent")
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	api := client.New(cfg.APIURL, cfg.Session.RequestTimeout, logger)
	expired := make(chan string, 1)
	ctrl := session.NewController(cfg.Session, session.NewFileStore(cfg.StatePath), api,
		clockwork.NewRealClock(), logger, func(msg string) {
			select {
			case expired <- msg:
			default:
			}
		})
	defer ctrl.Stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	state, err := ctrl.Restore()
	switch {
	case errors.Is(err, session.ErrExpired):
		fmt.Fprintln(out, session.ExpiredMessage)
	case err != nil:
		logger.Warn("stored session discarded", slog.String("error", err.Error()))
	}

	if state != session.StateAuthenticated {
		if err := signIn(ctx, api, ctrl, lines, out); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Welcome back, %s.\n", ctrl.User().Name)
	}
	if err := ctrl.Start(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case msg := <-expired:
			fmt.Fprintln(out, msg)
			if err := signIn(ctx, api, ctrl, lines, out); err != nil {
				return err
			}
			if err := ctrl.Start(); err != nil {
				return err
			}

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			ctrl.Touch(session.EventKey)

			switch strings.TrimSpace(line) {
			case "whoami":
				u := ctrl.User()
				fmt.Fprintf(out, "%s <%s> (%s)\n", u.Name, u.Email, u.Role)
			case "logout":
				ctrl.Logout()
				fmt.Fprintln(out, "Signed out.")
				if err := signIn(ctx, api, ctrl, lines, out); err != nil {
					return err
				}
				if err := ctrl.Start(); err != nil {
					return err
				}
			case "quit", "exit":
				return nil
			}
		}
	}
}

// signIn prompts until the server accepts a login.
func signIn(ctx context.Context, api *client.Client, ctrl *session.Controller, lines <-chan string, out io.Writer) error {
	for {
		identifier, err := prompt(ctx, "Email or name: ", lines, out)
		if err != nil {
			return err
		}
		password, err := prompt(ctx, "Password: ", lines, out)
		if err != nil {
			return err
		}

		res, err := api.Login(ctx, identifier, password)
		switch {
		case errors.Is(err, client.ErrInvalidCredentials):
			fmt.Fprintln(out, "Invalid credentials, try again.")
			continue
		case err != nil:
			return err
		}

		if err := ctrl.Begin(res.Token, res.User); err != nil {
			return err
		}
		fmt.Fprintf(out, "Signed in as %s.\n", res.User.Name)
		return nil
	}
}

func prompt(ctx context.Context, label string, lines <-chan string, out io.Writer) (string, error) {
	fmt.Fprint(out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}
