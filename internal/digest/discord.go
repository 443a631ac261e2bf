package digest

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/zulandar/followup/internal/config"
)

// discordSession abstracts the discordgo.Session methods we use,
// enabling test mocks.
type discordSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// discordNotifier posts digests to a Discord channel.
type discordNotifier struct {
	session discordSession
	channel string
}

func newDiscordNotifier(cfg config.DiscordConfig) (*discordNotifier, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	return &discordNotifier{session: session, channel: cfg.Channel}, nil
}

func (d *discordNotifier) Name() string { return "discord" }

// Post sends the digest as an embed. Discord REST calls need no open
// gateway connection.
func (d *discordNotifier) Post(ctx context.Context, f Formatted) error {
	embed := &discordgo.MessageEmbed{
		Title:       f.Title,
		Description: f.Body,
		Color:       0x2196f3,
	}
	if _, err := d.session.ChannelMessageSendEmbed(d.channel, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: send embed: %w", err)
	}
	return nil
}
