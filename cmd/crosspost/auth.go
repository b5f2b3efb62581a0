package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"crosspost/internal/notify"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup [email]",
		Short: "Create an account and log in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, args, "Account created.", func(a *app, email, password string) (string, error) {
				return a.client.Signup(cmd.Context(), email, password)
			})
		},
	}
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [email]",
		Short: "Log in to an existing account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, args, "Logged in.", func(a *app, email, password string) (string, error) {
				return a.client.Login(cmd.Context(), email, password)
			})
		},
	}
}

func runAuth(cmd *cobra.Command, args []string, success string, authFn func(a *app, email, password string) (string, error)) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	email := ""
	if len(args) == 1 {
		email = args[0]
	}
	if email == "" {
		email, err = promptLine(cmd, "Email: ")
		if err != nil {
			return err
		}
	}
	password, err := promptPassword(cmd, "Password: ")
	if err != nil {
		return err
	}

	token, err := authFn(a, email, password)
	if err != nil {
		return err
	}
	if err := a.session.SetToken(token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	a.announce(cmd.OutOrStdout(), success, notify.SeveritySuccess)
	return nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.session.Clear(); err != nil {
				return err
			}
			a.announce(cmd.OutOrStdout(), "Logged out.", notify.SeverityInfo)
			return nil
		},
	}
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal, and falls
// back to a plain line read otherwise so tests and pipes still work.
func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	return promptLine(cmd, prompt)
}
