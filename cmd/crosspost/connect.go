package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crosspost/internal/api"
	"crosspost/internal/connection"
	"crosspost/internal/notify"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show login state and platform connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()

			loggedIn, err := a.session.LoggedIn()
			if err != nil {
				return err
			}
			if !loggedIn {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}
			fmt.Fprintln(out, "Logged in.")

			a.conns.Refresh(cmd.Context())
			states, err := a.conns.States()
			if err != nil {
				return err
			}
			for _, p := range api.Platforms {
				st := states[p]
				switch {
				case st.Connected && st.ScreenName != "":
					fmt.Fprintf(out, "  %-10s connected (@%s)\n", p.DisplayName(), st.ScreenName)
				case st.Connected:
					fmt.Fprintf(out, "  %-10s connected\n", p.DisplayName())
				default:
					fmt.Fprintf(out, "  %-10s not connected\n", p.DisplayName())
				}
			}
			return nil
		},
	}
}

func newConnectCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "connect <linkedin|twitter>",
		Short: "Link a platform account via browser OAuth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePlatform(args[0])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			listener, err := connection.Listen(a.cfg.CallbackAddr, p)
			if err != nil {
				return fmt.Errorf("start callback listener: %w", err)
			}

			authURL, err := a.conns.BeginConnect(cmd.Context(), p)
			if err != nil {
				listener.Close()
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Open this URL in your browser to authorize %s:\n\n  %s\n\n", p.DisplayName(), authURL)
			fmt.Fprintf(out, "Waiting for the browser to return to %s ...\n", listener.URL())

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result, err := listener.Wait(ctx)
			if err != nil {
				return fmt.Errorf("waiting for authorization: %w", err)
			}

			// Pick up the fresh connection state before reporting.
			a.conns.Refresh(cmd.Context())
			a.announce(out, result.StatusText(), result.Severity())
			if !result.OK {
				return fmt.Errorf("%s connection failed", p.DisplayName())
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "how long to wait for the browser to complete authorization")
	return cmd
}

func newDisconnectCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "disconnect <linkedin|twitter>",
		Short: "Unlink a platform account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePlatform(args[0])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if !yes {
				answer, err := promptLine(cmd, fmt.Sprintf("Disconnect %s? [y/N]: ", p.DisplayName()))
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := a.conns.Disconnect(cmd.Context(), p); err != nil {
				return err
			}
			a.announce(cmd.OutOrStdout(), fmt.Sprintf("%s disconnected.", p.DisplayName()), notify.SeveritySuccess)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
