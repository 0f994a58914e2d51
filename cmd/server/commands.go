package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/warp/date-engine/actuarial"
	"github.com/warp/date-engine/api"
	"github.com/warp/date-engine/generic"
	"github.com/warp/date-engine/generic/store"
	"github.com/warp/date-engine/store/sqlite"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "date-engine",
		Short:        "Calendar arithmetic and payment schedule engine",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newAgeCmd(), newScheduleCmd())
	return root
}

// =============================================================================
// SERVE
// =============================================================================

func newServeCmd() *cobra.Command {
	cfg := DefaultConfig()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfg)
		},
	}
	cfg.AddFlags(cmd.Flags())
	return cmd
}

func runServe(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	schedules, closeStore, err := openStore(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	handler := api.NewHandler(schedules, api.WithLogger(log), api.WithCacheTTL(cfg.CacheTTL))
	router := api.NewRouter(handler, cfg.CORSOrigins...)

	if retention, ok := cfg.Retention(); ok {
		sweeper := api.NewRetentionSweeper(schedules, log, retention)
		sweeper.CheckInterval = cfg.SweepInterval
		sweeper.Start()
		defer sweeper.Stop()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("server starting on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// openStore picks the map store for an empty path and SQLite otherwise.
func openStore(dbPath string, log logrus.FieldLogger) (generic.ScheduleStore, func(), error) {
	if dbPath == "" {
		log.Info("using in-memory map store")
		return store.NewMemory(), func() {}, nil
	}
	s, err := sqlite.New(dbPath, sqlite.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return s, func() {
		if err := s.Close(); err != nil {
			log.WithError(err).Warn("failed to close database")
		}
	}, nil
}

// =============================================================================
// AGE
// =============================================================================

func newAgeCmd() *cobra.Command {
	var precision string
	cmd := &cobra.Command{
		Use:   "age FROM TO",
		Short: "Print the exact and integer ages between two dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseDates(args[0], args[1])
			if err != nil {
				return err
			}
			return printAge(cmd.OutOrStdout(), precision, from, to)
		},
	}
	cmd.Flags().StringVar(&precision, "precision", "decimal", "Numeric precision for the exact age (decimal, float64, float32)")
	return cmd
}

func printAge(out io.Writer, precision string, from, to generic.Date) error {
	var exact string
	switch strings.ToLower(precision) {
	case "decimal":
		exact = generic.ExactAge(generic.Decimal, from, to).Round(10).String()
	case "float64":
		exact = fmt.Sprint(generic.ExactAge(generic.Float64, from, to))
	case "float32":
		exact = fmt.Sprint(generic.ExactAge(generic.Float32, from, to))
	default:
		return fmt.Errorf("%w: unknown precision %q", generic.ErrInvalidArgument, precision)
	}

	fmt.Fprintf(out, "exact age:             %s\n", exact)
	fmt.Fprintf(out, "age last birthday:     %d\n", generic.AgeLastBirthday(from, to))
	fmt.Fprintf(out, "age nearest birthday:  %d\n", generic.AgeNearestBirthday(from, to))
	fmt.Fprintf(out, "complete months:       %d\n",
		generic.CompleteMonthsBetween(generic.FirstOf(from, to), generic.LastOf(from, to)))
	return nil
}

// =============================================================================
// SCHEDULE
// =============================================================================

func newScheduleCmd() *cobra.Command {
	var birth, basis string
	cmd := &cobra.Command{
		Use:   "schedule KIND CALCULATION_DATE LAST_DATE",
		Short: "Print a generated schedule, or a payment plan when --birth is set",
		Long: "Prints one date per line. With --birth, prints a payment plan with the exact " +
			"and integer age at each payment.\n\nKinds: " + kindList(),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := generic.ParseScheduleKind(args[0])
			if err != nil {
				return err
			}
			calc, last, err := parseDates(args[1], args[2])
			if err != nil {
				return err
			}
			if birth == "" {
				return printSchedule(cmd.OutOrStdout(), kind, calc, last)
			}
			return printPlan(cmd.OutOrStdout(), kind, calc, last, birth, basis)
		},
	}
	cmd.Flags().StringVar(&birth, "birth", "", "Birth date of the life; prints a plan")
	cmd.Flags().StringVar(&basis, "basis", string(actuarial.AgeLastBirthday), "Age basis for the plan (last_birthday, nearest_birthday)")
	return cmd
}

func printSchedule(out io.Writer, kind generic.ScheduleKind, calc, last generic.Date) error {
	dates, err := generic.NewOrderedDatesFromStrategy(kind, calc, last)
	if err != nil {
		return err
	}
	for d := range dates.Values() {
		fmt.Fprintln(out, d)
	}
	return nil
}

func printPlan(out io.Writer, kind generic.ScheduleKind, calc, last generic.Date, birth, basis string) error {
	birthDate, err := generic.ParseDate(birth)
	if err != nil {
		return fmt.Errorf("birth: %w", err)
	}
	ageBasis, err := actuarial.ParseAgeBasis(basis)
	if err != nil {
		return err
	}
	plan, err := actuarial.NewPlan(birthDate, ageBasis, kind, calc, last)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATE\tEXACT AGE\tAGE\tYEAR FRACTION")
	for _, p := range plan.Payments() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			p.Index, p.Date, p.ExactAge.StringFixed(6), p.Age, p.YearFraction.StringFixed(6))
	}
	return tw.Flush()
}

func parseDates(a, b string) (generic.Date, generic.Date, error) {
	first, err := generic.ParseDate(a)
	if err != nil {
		return generic.Date{}, generic.Date{}, err
	}
	second, err := generic.ParseDate(b)
	if err != nil {
		return generic.Date{}, generic.Date{}, err
	}
	return first, second, nil
}

func kindList() string {
	kinds := generic.ScheduleKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
