package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/chairside/internal/cli/formatter"
	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the signed-in stylist's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStylist(cmd, app)
		},
	}
	cmd.AddCommand(newProfileSetCmd(app))
	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var email, name, phone, picture string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Long: `Update the stylist's name, phone, picture or email. Only the flags given
are changed. The salon service always needs an email, so the current one is
sent when --email is not given.`,
		Example: `  chairside profile set --name "Marta Ruiz" --phone 555-0199`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("email") && !flags.Changed("name") && !flags.Changed("phone") && !flags.Changed("picture") {
				return errors.New("nothing to update: pass --email, --name, --phone or --picture")
			}

			ctx := context.Background()
			update := domain.ProfileUpdate{Email: email}
			if !flags.Changed("email") {
				current, err := app.Stylist.Info(ctx)
				if err != nil {
					return err
				}
				update.Email = current.Email
			}
			if flags.Changed("name") {
				update.Name = &name
			}
			if flags.Changed("phone") {
				update.Phone = &phone
			}
			if flags.Changed("picture") {
				update.Picture = &picture
			}

			s, err := app.Stylist.UpdateProfile(ctx, update)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.StyleGreen.Render("Profile updated."))
			fmt.Fprintln(out, formatter.FormatStylist(s))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&phone, "phone", "", "New phone number")
	cmd.Flags().StringVar(&picture, "picture", "", "New picture URL")

	return cmd
}

func printStylist(cmd *cobra.Command, app *App) error {
	s, err := app.Stylist.Info(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStylist(s))
	return nil
}
