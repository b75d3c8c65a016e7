package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/chairside/internal/dashboard"
	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/alexanderramin/chairside/internal/salon"
	"github.com/alexanderramin/chairside/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
// Services left nil are wired from configuration before the first command
// runs; tests set them directly.
type App struct {
	Appointments service.AppointmentService
	WorkItems    service.WorkItemService
	Stylist      service.StylistService

	// DashboardObserver receives controller transitions and stale drops.
	DashboardObserver dashboard.Observer

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Now is the clock used for relative dates. Nil means time.Now.
	Now func() time.Time

	// StartDate is the date the dashboard opens on. Zero means today.
	StartDate time.Time

	dateArg string
	loc     *time.Location
	closers []io.Closer
}

func (a *App) now() time.Time {
	t := time.Now()
	if a.Now != nil {
		t = a.Now()
	}
	if a.loc != nil {
		t = t.In(a.loc)
	}
	return t
}

func (a *App) startDate() time.Time {
	if !a.StartDate.IsZero() {
		return a.StartDate
	}
	return startOfDay(a.now())
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// Close releases the log file opened for the TUI, if any.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// rootFlags are the persistent connection flags. They override the config
// file and environment.
type rootFlags struct {
	configPath string
	baseURL    string
	token      string
	timeoutMs  int
	verbose    bool
}

// NewRootCmd creates the top-level "chairside" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "chairside",
		Short: "Stylist appointment dashboard for the salon service",
		Long: `chairside shows a stylist's pending appointments, the services booked
on each one and their total time and cost.

Run without arguments in a terminal to open the dashboard; otherwise the
pending appointments are printed as a table.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.connect(cmd, flags); err != nil {
				return err
			}
			return app.resolveStartDate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(app)
			}
			return printAppointments(cmd, app, false)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default ~/.chairside/config.toml)")
	pf.StringVar(&flags.baseURL, "base-url", "", "Salon service base URL")
	pf.StringVar(&flags.token, "token", "", "Bearer token for the salon service")
	pf.IntVar(&flags.timeoutMs, "timeout-ms", 0, "Per-request timeout in milliseconds")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log salon calls to stderr")
	pf.Var(newDateValue(&app.dateArg, app.now), "date", "Date to show (YYYY-MM-DD, today, tomorrow)")

	root.AddCommand(
		newAppointmentsCmd(app),
		newShowCmd(app),
		newTransitionCmd(app, "complete", domain.AppointmentCompleted),
		newTransitionCmd(app, "cancel", domain.AppointmentCancelled),
		newWhoamiCmd(app),
		newProfileCmd(app),
		newDashboardCmd(app),
	)

	return root
}

// resolveStartDate parses --date in the configured timezone, so the chosen
// day lines up with appointment dates decoded in that zone.
func (a *App) resolveStartDate() error {
	if a.dateArg == "" {
		return nil
	}
	t, err := parseDateArg(a.dateArg, a.now())
	if err != nil {
		return err
	}
	a.StartDate = t
	return nil
}

// connect wires the services from configuration unless they are already set.
func (a *App) connect(cmd *cobra.Command, flags *rootFlags) error {
	if a.Appointments != nil && a.WorkItems != nil && a.Stylist != nil {
		return nil
	}

	cfg, err := salon.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if flags.baseURL != "" {
		cfg.BaseURL = flags.baseURL
	}
	if flags.token != "" {
		cfg.Token = flags.token
	}
	if flags.timeoutMs > 0 {
		cfg.TimeoutMs = flags.timeoutMs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if loc, err := cfg.Location(); err == nil {
		a.loc = loc
	}

	logw, err := a.logWriter(cmd, cfg, flags.verbose)
	if err != nil {
		return err
	}

	var (
		callObserver salon.Observer = salon.NoopObserver{}
		useCases     []service.UseCaseObserver
	)
	if logw != nil {
		callObserver = salon.NewLogObserver(logw)
		useCases = append(useCases, service.NewLogUseCaseObserver(logw))
		a.DashboardObserver = dashboard.NewLogObserver(logw)
	}

	client, err := salon.NewClient(cfg, callObserver)
	if err != nil {
		return fmt.Errorf("creating salon client: %w", err)
	}

	a.Appointments = service.NewAppointmentService(client, useCases...)
	a.WorkItems = service.NewWorkItemService(client, useCases...)
	a.Stylist = service.NewStylistService(client, useCases...)
	return nil
}

// logWriter picks where observers write. The TUI owns the terminal, so it
// only logs to a file; plain commands log to stderr when asked.
func (a *App) logWriter(cmd *cobra.Command, cfg salon.Config, verbose bool) (io.Writer, error) {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "chairside")
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.closers = append(a.closers, f)
		return f, nil
	}
	if (verbose || cfg.LogCalls) && !a.runsTUI(cmd) {
		return cmd.ErrOrStderr(), nil
	}
	return nil, nil
}

// runsTUI reports whether cmd will take over the terminal.
func (a *App) runsTUI(cmd *cobra.Command) bool {
	if cmd.Name() == "dashboard" {
		return true
	}
	return !cmd.HasParent() && a.interactive()
}

// runTUI runs the dashboard until the user quits.
func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive appointment dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("dashboard needs an interactive terminal")
			}
			return runTUI(app)
		},
	}
}
