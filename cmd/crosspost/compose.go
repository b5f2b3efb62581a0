package main

import (
	"fmt"
	"strings"

	"crosspost/internal/compose"
	"crosspost/internal/notify"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		topic  string
		tone   string
		length string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate draft text with AI and save it as the current draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			gen := compose.NewGenerator(a.client)
			draft, err := gen.Generate(cmd.Context(), topic, tone, length)
			if err != nil {
				return err
			}
			if err := a.drafts.Save(draft.Text); err != nil {
				return fmt.Errorf("save draft: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, draft.Text)
			fmt.Fprintln(out)
			a.announce(out, fmt.Sprintf("Draft saved (%d characters).", draft.CharCount()), notify.SeveritySuccess)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&topic, "topic", "", "what the post should be about (required)")
	flags.StringVar(&tone, "tone", "professional", "tone: "+strings.Join(compose.Tones, ", "))
	flags.StringVar(&length, "length", "medium", "length: "+strings.Join(compose.Lengths, ", "))
	return cmd
}

func newDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Show or edit the current draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraftShow(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraftShow(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <text>...",
		Short: "Replace the current draft",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			text := strings.Join(args, " ")
			if err := a.drafts.Save(text); err != nil {
				return err
			}
			draft := compose.Draft{Text: text}
			a.announce(cmd.OutOrStdout(), fmt.Sprintf("Draft saved (%d characters).", draft.CharCount()), notify.SeveritySuccess)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Discard the current draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.drafts.Clear(); err != nil {
				return err
			}
			a.announce(cmd.OutOrStdout(), "Draft cleared.", notify.SeverityInfo)
			return nil
		},
	})

	return cmd
}

func runDraftShow(cmd *cobra.Command) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	text, err := a.drafts.Get()
	if err != nil {
		return err
	}
	draft := compose.Draft{Text: text}

	out := cmd.OutOrStdout()
	if draft.Empty() {
		fmt.Fprintln(out, "(no draft)")
		return nil
	}
	fmt.Fprintln(out, draft.Text)
	fmt.Fprintf(out, "\n%d characters\n", draft.CharCount())
	return nil
}

func newImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Show or change the image attached to the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			mgr, err := loadAttachment(a)
			if err != nil {
				return err
			}
			att := mgr.Current()

			out := cmd.OutOrStdout()
			if att.Empty() {
				fmt.Fprintln(out, "(no image attached)")
				return nil
			}
			fmt.Fprintf(out, "%s (%d bytes)\n", att.Name, len(att.Data))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "attach <path>",
		Short: "Attach a local image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			mgr, err := loadAttachment(a)
			if err != nil {
				return err
			}
			if err := mgr.SelectLocalFile(args[0]); err != nil {
				return err
			}
			if err := saveAttachment(a, mgr); err != nil {
				return err
			}
			a.announce(cmd.OutOrStdout(), fmt.Sprintf("Attached %s.", mgr.Current().Name), notify.SeveritySuccess)
			return nil
		},
	})

	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an image with AI and attach it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := cmd.Flags().GetString("prompt")
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			mgr, err := loadAttachment(a)
			if err != nil {
				return err
			}
			if err := mgr.GenerateImage(cmd.Context(), a.client, prompt); err != nil {
				return err
			}
			if err := saveAttachment(a, mgr); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if att := mgr.Current(); att.Empty() {
				a.announce(out, "The image service returned nothing to attach.", notify.SeverityInfo)
			} else {
				a.announce(out, fmt.Sprintf("Attached %s (%d bytes).", att.Name, len(att.Data)), notify.SeveritySuccess)
			}
			return nil
		},
	}
	genCmd.Flags().String("prompt", "", "what the image should show (required)")
	cmd.AddCommand(genCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove the attached image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			mgr, err := loadAttachment(a)
			if err != nil {
				return err
			}
			mgr.Remove()
			if err := saveAttachment(a, mgr); err != nil {
				return err
			}
			a.announce(cmd.OutOrStdout(), "Image removed.", notify.SeverityInfo)
			return nil
		},
	})

	return cmd
}

// loadAttachment restores the persisted attachment, if any, into a
// fresh manager.
func loadAttachment(a *app) (*compose.AttachmentManager, error) {
	mgr := compose.NewAttachmentManager()
	name, data, previewRef, ok, err := a.images.Get()
	if err != nil {
		return nil, fmt.Errorf("load attachment: %w", err)
	}
	if ok {
		mgr.Restore(compose.Attachment{Name: name, Data: data, PreviewRef: previewRef})
	}
	return mgr, nil
}

func saveAttachment(a *app, mgr *compose.AttachmentManager) error {
	att := mgr.Current()
	if att.Empty() {
		if err := a.images.Clear(); err != nil {
			return fmt.Errorf("clear attachment: %w", err)
		}
		return nil
	}
	if err := a.images.Save(att.Name, att.Data, att.PreviewRef); err != nil {
		return fmt.Errorf("save attachment: %w", err)
	}
	return nil
}
