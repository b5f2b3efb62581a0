package main

import (
	"errors"
	"fmt"
	"strconv"

	"crosspost/internal/api"
	"crosspost/internal/compose"

	"github.com/spf13/cobra"
)

const (
	settingSelectLinkedIn = "publish.select_linkedin"
	settingSelectTwitter  = "publish.select_twitter"
)

func newPublishCmd() *cobra.Command {
	var (
		linkedin bool
		twitter  bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the current draft to the selected platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			sel, err := resolveSelection(cmd, a, linkedin, twitter)
			if err != nil {
				return err
			}

			text, err := a.drafts.Get()
			if err != nil {
				return err
			}
			draft := compose.Draft{Text: text}

			mgr, err := loadAttachment(a)
			if err != nil {
				return err
			}

			a.conns.Refresh(cmd.Context())
			conns, err := a.conns.States()
			if err != nil {
				return err
			}

			publisher := compose.NewPublisher(a.client, a.history, a.logger)
			result, err := publisher.Publish(cmd.Context(), draft, mgr, sel, conns)
			if err != nil {
				return err
			}

			if err := saveAttachment(a, mgr); err != nil {
				return err
			}
			if err := saveSelection(a, sel); err != nil {
				a.logger.Warn("save platform selection", "error", err)
			}

			a.announce(cmd.OutOrStdout(), result.Message, result.Severity)
			if !result.AllOK {
				return errors.New("publish failed for one or more platforms")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&linkedin, "linkedin", false, "publish to LinkedIn")
	flags.BoolVar(&twitter, "twitter", false, "publish to Twitter/X")
	return cmd
}

// resolveSelection uses the flags when any were given, otherwise the
// selection remembered from the last publish, otherwise the default.
func resolveSelection(cmd *cobra.Command, a *app, linkedin, twitter bool) (compose.Selection, error) {
	if cmd.Flags().Changed("linkedin") || cmd.Flags().Changed("twitter") {
		return compose.Selection{LinkedIn: linkedin, Twitter: twitter}, nil
	}

	liVal, err := a.settings.Get(settingSelectLinkedIn)
	if err != nil {
		return compose.Selection{}, err
	}
	twVal, err := a.settings.Get(settingSelectTwitter)
	if err != nil {
		return compose.Selection{}, err
	}
	if liVal == "" && twVal == "" {
		return compose.DefaultSelection(), nil
	}
	return compose.Selection{
		LinkedIn: liVal == "true",
		Twitter:  twVal == "true",
	}, nil
}

func saveSelection(a *app, sel compose.Selection) error {
	if err := a.settings.Set(settingSelectLinkedIn, strconv.FormatBool(sel.LinkedIn)); err != nil {
		return err
	}
	return a.settings.Set(settingSelectTwitter, strconv.FormatBool(sel.Twitter))
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent publish attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			entries, err := a.history.List(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No publish history.")
				return nil
			}
			for _, e := range entries {
				mark := "✅"
				if !e.OK {
					mark = "❌"
				}
				image := ""
				if e.HadImage {
					image = " +image"
				}
				name := api.Platform(e.Platform).DisplayName()
				fmt.Fprintf(out, "%s  %s %-10s %4d chars%s  %s\n",
					e.PostedAt.Local().Format("2006-01-02 15:04"), mark, name, e.Chars, image, e.Message)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")
	return cmd
}
