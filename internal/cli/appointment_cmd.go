package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chairside/internal/cli/formatter"
	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/spf13/cobra"
)

func newAppointmentsCmd(app *App) *cobra.Command {
	var done bool

	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"ls"},
		Short:   "List pending appointments",
		Long: `List the stylist's pending appointments in the order the salon service
returns them. With --date only that day's appointments are shown; with
--done the completed ones are listed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printAppointments(cmd, app, done)
		},
	}

	cmd.Flags().BoolVar(&done, "done", false, "List completed appointments")

	return cmd
}

// printAppointments writes the pending (or done) table, filtered to --date
// when the flag was given.
func printAppointments(cmd *cobra.Command, app *App, done bool) error {
	ctx := context.Background()

	title := "Pending appointments"
	list := app.Appointments.ListPending
	if done {
		title = "Completed appointments"
		list = app.Appointments.ListDone
	}

	stop := app.spin(cmd, "Fetching appointments...")
	appts, err := list(ctx)
	stop()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("date") {
		day := app.StartDate
		appts = filterDay(appts, day)
		title += " on " + formatter.HumanDate(day)
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAppointments(title, appts, app.now()))
	return nil
}

func filterDay(appts []domain.Appointment, day time.Time) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(appts))
	for _, a := range appts {
		if a.SameDay(day) {
			out = append(out, a)
		}
	}
	return out
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <appointment-id>",
		Short: "Show an appointment's services and totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := domain.AppointmentID(args[0])

			stop := app.spin(cmd, "Fetching appointment...")
			a, err := findAppointment(ctx, app, id)
			if err != nil {
				stop()
				return err
			}
			items, err := app.WorkItems.ListByAppointment(ctx, id)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAppointmentDetail(a, items))
			return nil
		},
	}
}

// findAppointment looks id up among pending, then completed appointments.
// An id found in neither still yields an appointment so its items can be
// shown.
func findAppointment(ctx context.Context, app *App, id domain.AppointmentID) (domain.Appointment, error) {
	pending, err := app.Appointments.ListPending(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	if i := domain.IndexOf(pending, id); i >= 0 {
		return pending[i], nil
	}
	done, err := app.Appointments.ListDone(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	if i := domain.IndexOf(done, id); i >= 0 {
		return done[i], nil
	}
	return domain.Appointment{ID: id}, nil
}

// newTransitionCmd builds "complete" and "cancel".
func newTransitionCmd(app *App, use string, status domain.AppointmentStatus) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   use + " <appointment-id>",
		Short: fmt.Sprintf("Mark an appointment as %s", status.Label()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.AppointmentID(args[0])

			if app.interactive() && !yes {
				prompt := fmt.Sprintf("Mark appointment %s as %s? [y/N]: ", id, status.Label())
				if !confirmPrompt(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			ctx := context.Background()
			var err error
			if status == domain.AppointmentCompleted {
				_, err = app.Appointments.Complete(ctx, id)
			} else {
				_, err = app.Appointments.Cancel(ctx, id)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render(
				fmt.Sprintf("Appointment %s marked %s.", id, status.Label())))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in stylist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStylist(cmd, app)
		},
	}
}

// spin shows a spinner on stderr while a plain command waits on the network.
// Output redirected to a file or pipe gets no spinner.
func (a *App) spin(cmd *cobra.Command, message string) func() {
	if !a.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}
