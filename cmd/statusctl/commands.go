package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"team_status_bot/internal/app"
	"team_status_bot/internal/domain/reminder"
	"team_status_bot/internal/domain/status"
	"team_status_bot/internal/domain/user"
	idb "team_status_bot/internal/infra/database"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var (
	recentDays int
	runsDate   string
	runsBack   int
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := idb.Migrate(db)
		if err != nil {
			return err
		}
		if !res.Changed {
			fmt.Fprintf(cmd.OutOrStdout(), "Schema already at version %d\n", res.Version)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s schema migrated to version %d\n", green("✓"), res.Version)
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:     "recent",
	Short:   "List statuses of the last days",
	Example: "  statusctl recent\n  statusctl recent --days 14",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := statusService.ListRecent(cmd.Context(), recentDays)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), faint("no statuses"))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), recentTable(entries))
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List known users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := statusService.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), usersTable(users))
		return nil
	},
}

var runsCmd = &cobra.Command{
	Use:     "runs",
	Short:   "Show reminder sweeps per day",
	Example: "  statusctl runs\n  statusctl runs --date 2024-05-10\n  statusctl runs --days 14",
	RunE: func(cmd *cobra.Command, args []string) error {
		dates, err := runDates(runsDate, runsBack, statusService.Today())
		if err != nil {
			return err
		}

		var runs []*reminder.Run
		for _, d := range dates {
			run, err := reminderRuns.GetByDate(cmd.Context(), d)
			if errors.Is(err, reminder.ErrRunNotFound) {
				run = &reminder.Run{RunDate: d}
			} else if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		fmt.Fprintln(cmd.OutOrStdout(), runsTable(runs))
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVar(&recentDays, "days", app.DefaultWindowDays, "window length in days")
	runsCmd.Flags().StringVar(&runsDate, "date", "", "single day to show (YYYY-MM-DD)")
	runsCmd.Flags().IntVar(&runsBack, "days", app.DefaultWindowDays, "number of days back from today")
}

// runDates lists the days to inspect, newest first. An explicit date wins over days.
func runDates(date string, days int, today time.Time) ([]time.Time, error) {
	if date != "" {
		d, err := time.ParseInLocation(status.DateLayout, date, today.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: use YYYY-MM-DD", date)
		}
		return []time.Time{d}, nil
	}
	if days <= 0 {
		days = app.DefaultWindowDays
	}
	dates := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, today.AddDate(0, 0, -i))
	}
	return dates, nil
}

func recentTable(entries []*status.RecentEntry) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold("DATE"), bold("USER"), bold("STATUS"))
	for _, e := range entries {
		tbl.AddRow(e.Date.Format(status.DateLayout), e.Username, e.Text)
	}
	return tbl
}

func usersTable(users []*user.User) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("ID"), bold("USERNAME"), bold("CHAT"), bold("REMINDERS"))
	for _, u := range users {
		reminders := green("on")
		if !u.IsActive {
			reminders = red("off")
		}
		tbl.AddRow(strconv.FormatInt(u.ID, 10), u.Username, strconv.FormatInt(u.ChatID, 10), reminders)
	}
	return tbl
}

func runsTable(runs []*reminder.Run) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("DATE"), bold("STATE"), bold("SENT"), bold("SKIPPED"), bold("FAILED"))
	for _, r := range runs {
		state := faint("none")
		switch {
		case r.FinishedAt != nil:
			state = green("done")
		case r.ID != 0:
			state = red("unfinished")
		}
		tbl.AddRow(r.RunDate.Format(status.DateLayout), state, r.Sent, r.Skipped, r.Failed)
	}
	return tbl
}
