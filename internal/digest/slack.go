package digest

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
	"github.com/zulandar/followup/internal/config"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// slackNotifier posts digests to a Slack channel.
type slackNotifier struct {
	client  slackClient
	channel string
}

func newSlackNotifier(cfg config.SlackConfig) *slackNotifier {
	return &slackNotifier{
		client:  slackapi.New(cfg.BotToken),
		channel: cfg.Channel,
	}
}

func (s *slackNotifier) Name() string { return "slack" }

// Post sends the digest as a single attachment-styled message.
func (s *slackNotifier) Post(ctx context.Context, d Formatted) error {
	attachment := slackapi.Attachment{
		Title: d.Title,
		Text:  d.Body,
		Color: "#2196f3",
	}
	_, _, err := s.client.PostMessageContext(ctx, s.channel,
		slackapi.MsgOptionAttachments(attachment))
	if err != nil {
		return fmt.Errorf("slack: post message: %w", err)
	}
	return nil
}
