// Package digest builds the periodic KPI summary and posts it to the
// configured chat channels. Delivery is best-effort: a failing notifier
// is logged and the others still run.
package digest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/followup/internal/approval"
	"github.com/zulandar/followup/internal/config"
	"github.com/zulandar/followup/internal/pipeline"
	"github.com/zulandar/followup/internal/pivot"
	"github.com/zulandar/followup/internal/sla"
	"github.com/zulandar/followup/internal/store"
	"gorm.io/gorm"
)

// Notifier posts one formatted digest to a chat platform.
type Notifier interface {
	Post(ctx context.Context, d Formatted) error
	Name() string
}

// Formatted is a digest rendered for chat delivery.
type Formatted struct {
	Title string
	Body  string
}

// Build renders the digest for an enriched task set.
func Build(rows []pipeline.Row, today time.Time) Formatted {
	kpi := pipeline.Summarize(rows)

	var b strings.Builder
	fmt.Fprintf(&b, "Tasks: %d total, %.1f%% done\n", kpi.Total, kpi.DonePct)
	fmt.Fprintf(&b, "Overdue: %d | Due soon: %d | SLA breach: %d\n", kpi.Overdue, kpi.DueSoon, kpi.SLABreach)

	counts := pivot.ByStatus(rows)
	if len(counts) > 0 {
		b.WriteString("By status:")
		for _, c := range counts {
			fmt.Fprintf(&b, " %s %d;", c.Key, c.Count)
		}
		b.WriteString("\n")
	}

	return Formatted{
		Title: fmt.Sprintf("Follow-up digest — %s", today.Format("2006-01-02")),
		Body:  strings.TrimRight(b.String(), "\n"),
	}
}

// Runner loads tasks, builds the digest and fans it out to notifiers.
type Runner struct {
	db        *gorm.DB
	cfg       *config.Config
	notifiers []Notifier
}

// NewRunner assembles a Runner with the notifiers the config enables.
func NewRunner(db *gorm.DB, cfg *config.Config) (*Runner, error) {
	r := &Runner{db: db, cfg: cfg}
	if cfg.Digest.Slack.BotToken != "" {
		r.notifiers = append(r.notifiers, newSlackNotifier(cfg.Digest.Slack))
	}
	if cfg.Digest.Discord.BotToken != "" {
		n, err := newDiscordNotifier(cfg.Digest.Discord)
		if err != nil {
			return nil, err
		}
		r.notifiers = append(r.notifiers, n)
	}
	if len(r.notifiers) == 0 {
		return nil, fmt.Errorf("digest: no notifier configured (set digest.slack or digest.discord)")
	}
	return r, nil
}

// RunOnce computes the digest as of now and posts it everywhere.
func (r *Runner) RunOnce(ctx context.Context) error {
	loc, err := r.cfg.Location()
	if err != nil {
		return err
	}
	today, err := pipeline.ResolveToday("", loc)
	if err != nil {
		return err
	}

	s := store.New(r.db)
	tasks, err := s.Tasks(store.ListFilters{})
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	crs, err := s.ChangeRequests()
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	policies, err := s.Policies()
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}

	rows := pipeline.Enrich(tasks, approval.BuildLookup(crs), sla.BuildPolicies(policies), pipeline.Context{
		Today:       today,
		DueSoonDays: r.cfg.DueSoonDays,
	})
	d := Build(rows, today)

	for _, n := range r.notifiers {
		if err := n.Post(ctx, d); err != nil {
			log.Printf("digest: post to %s failed: %v", n.Name(), err)
		}
	}
	return nil
}

// Watch posts a digest at every cron fire time until ctx is cancelled.
func (r *Runner) Watch(ctx context.Context) error {
	for {
		d, err := nextFire(r.cfg.Digest.Cron, time.Now())
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(d):
		}
		if err := r.RunOnce(ctx); err != nil {
			log.Printf("digest: run failed: %v", err)
		}
	}
}

// cronParser accepts standard 5-field expressions (minute, hour, dom,
// month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// nextFire returns how long until the schedule next fires after now.
func nextFire(expr string, now time.Time) (time.Duration, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0, fmt.Errorf("digest: parse cron %q: %w", expr, err)
	}
	return sched.Next(now).Sub(now), nil
}
