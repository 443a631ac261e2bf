package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/followup/internal/dates"
	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/store"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
	}

	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskShowCmd())
	cmd.AddCommand(newTaskUpdateCmd())
	cmd.AddCommand(newTaskDeleteCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var (
		configPath string
		title      string
		unit       string
		owner      string
		statusStr  string
		priority   string
		category   string
		due        string
		start      string
		week       int
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new task",
		Long:  "Adds a task to the Followup database. Dates are ISO (YYYY-MM-DD); malformed dates are stored as empty.",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := models.Task{
				Title:     title,
				Unit:      unit,
				Owner:     owner,
				Status:    statusStr,
				Priority:  priority,
				Category:  category,
				DueDate:   dates.Parse(due),
				StartDate: dates.Parse(start),
				Notes:     notes,
			}
			if cmd.Flags().Changed("week") {
				if week < 1 || week > 55 {
					return fmt.Errorf("week %d out of range (1-55)", week)
				}
				t.Week = &week
			}
			return runTaskAdd(cmd, configPath, t)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	cmd.Flags().StringVar(&title, "title", "", "task title (required)")
	cmd.Flags().StringVar(&unit, "unit", "", "owning unit")
	cmd.Flags().StringVar(&owner, "owner", "", "assigned owner")
	cmd.Flags().StringVar(&statusStr, "status", "", "current status (free text)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (Critical, High, Medium, Low)")
	cmd.Flags().StringVar(&category, "category", "", "category for SLA policy matching")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&week, "week", 0, "week number (1-55)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	cmd.MarkFlagRequired("title")
	return cmd
}

func runTaskAdd(cmd *cobra.Command, configPath string, t models.Task) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	s := store.New(gormDB)
	if err := s.CreateTask(&t); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created task %d: %s\n", t.ID, t.Title)
	if t.DueDate != nil {
		fmt.Fprintf(out, "Due: %s\n", dates.Format(t.DueDate))
	}
	return nil
}

func newTaskListCmd() *cobra.Command {
	var (
		configPath  string
		unit        string
		owner       string
		priority    string
		finalStatus string
		today       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with derived statuses",
		Long:  "Lists tasks with their derived final status, SLA due date and breach flag as of today.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskList(cmd, configPath, taskListOpts{
				unit:        unit,
				owner:       owner,
				priority:    priority,
				finalStatus: finalStatus,
				today:       today,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	cmd.Flags().StringVar(&unit, "unit", "", "filter by unit")
	cmd.Flags().StringVar(&owner, "owner", "", "filter by owner")
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority")
	cmd.Flags().StringVar(&finalStatus, "status", "", "filter by derived final status")
	cmd.Flags().StringVar(&today, "today", "", "override today (YYYY-MM-DD, for reproducible output)")
	return cmd
}

type taskListOpts struct {
	unit        string
	owner       string
	priority    string
	finalStatus string
	today       string
}

func runTaskList(cmd *cobra.Command, configPath string, opts taskListOpts) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	rows, _, err := enrichAll(gormDB, cfg, opts.today)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUNIT\tTASK\tOWNER\tPRIORITY\tDUE\tSTATUS\tSLA")
	shown := 0
	for _, r := range rows {
		if opts.unit != "" && r.Task.Unit != opts.unit {
			continue
		}
		if opts.owner != "" && r.Task.Owner != opts.owner {
			continue
		}
		if opts.priority != "" && r.Task.Priority != opts.priority {
			continue
		}
		if opts.finalStatus != "" && r.StatusFinal != opts.finalStatus {
			continue
		}
		slaCol := "-"
		if r.SLADueDate != nil {
			slaCol = "ok"
			if r.SLABreach {
				slaCol = "BREACH"
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Task.ID, r.Task.Unit, r.Task.Title, r.Task.Owner,
			r.Task.Priority, dates.Format(r.Task.DueDate), r.StatusFinal, slaCol)
		shown++
	}
	w.Flush()
	if shown == 0 {
		fmt.Fprintln(out, "No tasks found.")
	}
	return nil
}

func newTaskShowCmd() *cobra.Command {
	var (
		configPath string
		today      string
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task with its derived fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			return runTaskShow(cmd, configPath, uint(id), today)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	cmd.Flags().StringVar(&today, "today", "", "override today (YYYY-MM-DD)")
	return cmd
}

func runTaskShow(cmd *cobra.Command, configPath string, id uint, today string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	rows, _, err := enrichAll(gormDB, cfg, today)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range rows {
		if r.Task.ID != id {
			continue
		}
		fmt.Fprintf(out, "Task %d: %s\n", r.Task.ID, r.Task.Title)
		fmt.Fprintf(out, "Unit: %s  Owner: %s  Priority: %s  Week: %s\n",
			orDash(r.Task.Unit), orDash(r.Task.Owner), orDash(r.Task.Priority), intOrDash(r.Task.Week))
		fmt.Fprintf(out, "Status: %s (entered: %s)\n", r.StatusFinal, orDash(r.StatusOrig))
		fmt.Fprintf(out, "Start: %s  Due: %s  Rescheduled to: %s\n",
			orDash(dates.Format(r.Task.StartDate)), orDash(dates.Format(r.Task.DueDate)),
			orDash(dates.Format(r.Task.RescheduledTo)))
		fmt.Fprintf(out, "SLA target days: %s  SLA due: %s  Breach: %t\n",
			intOrDash(r.Task.SLATargetDays), orDash(dates.Format(r.SLADueDate)), r.SLABreach)
		if r.Task.ApprovalStatus != "" {
			fmt.Fprintf(out, "Approval: %s by %s (CR %s)\n",
				r.Task.ApprovalStatus, orDash(r.Task.ApprovalBy), orDash(r.Task.ChangeRequestID))
		}
		if r.Task.Notes != "" {
			fmt.Fprintf(out, "Notes: %s\n", r.Task.Notes)
		}
		return nil
	}
	return fmt.Errorf("task %d not found", id)
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		configPath string
		statusStr  string
		owner      string
		due        string
		resched    string
		completed  string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields on a task",
		Long:  "Updates the given fields on a task. Only flags that were set are written.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			updates := map[string]interface{}{}
			if cmd.Flags().Changed("status") {
				updates["status"] = statusStr
			}
			if cmd.Flags().Changed("owner") {
				updates["owner"] = owner
			}
			if cmd.Flags().Changed("due") {
				updates["due_date"] = dates.Parse(due)
			}
			if cmd.Flags().Changed("rescheduled-to") {
				updates["rescheduled_to"] = dates.Parse(resched)
			}
			if cmd.Flags().Changed("completed") {
				updates["completed_on"] = dates.Parse(completed)
			}
			if len(updates) == 0 {
				return fmt.Errorf("nothing to update: set at least one field flag")
			}
			return runTaskUpdate(cmd, configPath, uint(id), updates)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	cmd.Flags().StringVar(&statusStr, "status", "", "new status (free text)")
	cmd.Flags().StringVar(&owner, "owner", "", "new owner")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&resched, "rescheduled-to", "", "reschedule target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&completed, "completed", "", "completion date (YYYY-MM-DD)")
	return cmd
}

func runTaskUpdate(cmd *cobra.Command, configPath string, id uint, updates map[string]interface{}) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if err := store.New(gormDB).UpdateTask(id, updates); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d (%d fields)\n", id, len(updates))
	return nil
}

func newTaskDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			return runTaskDelete(cmd, configPath, uint(id))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	return cmd
}

func runTaskDelete(cmd *cobra.Command, configPath string, id uint) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if err := store.New(gormDB).DeleteTask(id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
