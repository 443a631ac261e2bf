package digest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	slackapi "github.com/slack-go/slack"
	"github.com/zulandar/followup/internal/config"
	"github.com/zulandar/followup/internal/dates"
	"github.com/zulandar/followup/internal/pipeline"
	"github.com/zulandar/followup/internal/status"
)

func TestBuild(t *testing.T) {
	rows := []pipeline.Row{
		{StatusFinal: status.Overdue, IsOverdue: true, SLABreach: true},
		{StatusFinal: status.DueSoon, IsDueSoon: true},
		{StatusFinal: status.Done, IsDone: true},
	}
	today := dates.Day(time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC))

	d := Build(rows, today)
	if d.Title != "Follow-up digest — 2024-01-10" {
		t.Errorf("title = %q", d.Title)
	}
	for _, want := range []string{
		"Tasks: 3 total, 33.3% done",
		"Overdue: 1 | Due soon: 1 | SLA breach: 1",
		"Overdue 1;",
		"Done 1;",
	} {
		if !strings.Contains(d.Body, want) {
			t.Errorf("body missing %q:\n%s", want, d.Body)
		}
	}
	if strings.HasSuffix(d.Body, "\n") {
		t.Error("body has trailing newline")
	}
}

func TestBuild_Empty(t *testing.T) {
	d := Build(nil, dates.Day(time.Now()))
	if strings.Contains(d.Body, "By status:") {
		t.Errorf("empty set should omit the status line:\n%s", d.Body)
	}
}

func TestNewRunner_RequiresNotifier(t *testing.T) {
	cfg, err := config.Parse([]byte("{}"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewRunner(nil, cfg); err == nil {
		t.Error("expected error with no notifier configured")
	}
}

func TestNewRunner_EnablesConfigured(t *testing.T) {
	cfg, err := config.Parse([]byte(`
digest:
  slack:
    bot_token: xoxb-test
    channel: "#ops"
  discord:
    bot_token: dc-test
    channel: "123"
`))
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRunner(nil, cfg)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if len(r.notifiers) != 2 {
		t.Errorf("notifiers = %d, want 2", len(r.notifiers))
	}
	names := map[string]bool{}
	for _, n := range r.notifiers {
		names[n.Name()] = true
	}
	if !names["slack"] || !names["discord"] {
		t.Errorf("notifier names = %v", names)
	}
}

func TestNextFire(t *testing.T) {
	now := time.Date(2024, 1, 1, 7, 30, 0, 0, time.UTC) // a Monday
	tests := []struct {
		expr string
		want time.Duration
	}{
		{"0 8 * * *", 30 * time.Minute},
		{"* * * * *", time.Minute},
		{"0 8 * * 2", 24*time.Hour + 30*time.Minute},
	}
	for _, tt := range tests {
		got, err := nextFire(tt.expr, now)
		if err != nil {
			t.Errorf("%q: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: next fire in %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestNextFire_Invalid(t *testing.T) {
	tests := []string{
		"",
		"not a cron",
		"* * * *",     // 4 fields
		"0 8 * * 1 *", // 6 fields, seconds not accepted
		"61 * * * *",  // out of range
	}
	for _, expr := range tests {
		if _, err := nextFire(expr, time.Now()); err == nil {
			t.Errorf("%q: expected parse error", expr)
		}
	}
}

type fakeSlack struct {
	channel string
	opts    int
	err     error
}

func (f *fakeSlack) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	f.channel = channelID
	f.opts = len(options)
	return "", "", f.err
}

func TestSlackNotifier_Post(t *testing.T) {
	fake := &fakeSlack{}
	n := &slackNotifier{client: fake, channel: "#ops"}
	d := Formatted{Title: "digest", Body: "all quiet"}

	if err := n.Post(context.Background(), d); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if fake.channel != "#ops" || fake.opts != 1 {
		t.Errorf("posted to %q with %d options", fake.channel, fake.opts)
	}

	fake.err = errors.New("channel_not_found")
	if err := n.Post(context.Background(), d); err == nil {
		t.Error("expected error to propagate")
	}
}

type fakeDiscord struct {
	channel string
	embed   *discordgo.MessageEmbed
	err     error
}

func (f *fakeDiscord) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channel = channelID
	f.embed = embed
	return nil, f.err
}

func TestDiscordNotifier_Post(t *testing.T) {
	fake := &fakeDiscord{}
	n := &discordNotifier{session: fake, channel: "123"}
	d := Formatted{Title: "digest", Body: "all quiet"}

	if err := n.Post(context.Background(), d); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if fake.channel != "123" {
		t.Errorf("channel = %q", fake.channel)
	}
	if fake.embed == nil || fake.embed.Title != "digest" || fake.embed.Description != "all quiet" {
		t.Errorf("embed = %+v", fake.embed)
	}

	fake.err = errors.New("missing access")
	if err := n.Post(context.Background(), d); err == nil {
		t.Error("expected error to propagate")
	}
}
