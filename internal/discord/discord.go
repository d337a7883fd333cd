// Package discord connects the chat layer to a Discord gateway session.
package discord

import (
	"bytes"
	"context"

	"traderjoe/internal/chat"
	"traderjoe/internal/logx"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

const Intents = discordgo.IntentGuildMessages | discordgo.IntentDirectMessages | discordgo.IntentMessageContent

type sender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Transport sends messages through the Discord REST API.
type Transport struct {
	api sender
}

func (t *Transport) SendText(ctx context.Context, channelID, text string) error {
	if _, err := t.api.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		return errors.Wrap(err, "send message")
	}

	return nil
}

func (t *Transport) SendFile(ctx context.Context, channelID, text string, file chat.File) error {
	data := &discordgo.MessageSend{
		Content: text,
		Files: []*discordgo.File{{
			Name:        file.Name,
			ContentType: file.ContentType,
			Reader:      bytes.NewReader(file.Data),
		}},
	}

	if _, err := t.api.ChannelMessageSendComplex(channelID, data, discordgo.WithContext(ctx)); err != nil {
		return errors.Wrap(err, "send file")
	}

	return nil
}

type Handler interface {
	OnMessage(ctx context.Context, transport chat.Transport, msg chat.Message)
}

type Bot struct {
	session   *discordgo.Session
	transport *Transport
}

func New(token string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrap(err, "create session")
	}

	session.Identify.Intents = Intents
	return &Bot{session: session, transport: &Transport{api: session}}, nil
}

func (b *Bot) String() string {
	return "discord"
}

func (b *Bot) Transport() *Transport {
	return b.transport
}

// Run dispatches incoming messages to handler until ctx is done.
func (b *Bot) Run(ctx context.Context, handler Handler) error {
	log := logx.Get(b.String())
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Infof("logged in as %s, ready on %d servers", r.User.String(), len(r.Guilds))
	})

	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		selfID := ""
		if s.State != nil && s.State.User != nil {
			selfID = s.State.User.ID
		}

		if msg, ok := convert(m, selfID); ok {
			handler.OnMessage(ctx, b.transport, msg)
		}
	})

	if err := b.session.Open(); err != nil {
		return errors.Wrap(err, "open session")
	}

	<-ctx.Done()
	if err := b.session.Close(); err != nil {
		return errors.Wrap(err, "close session")
	}

	return nil
}

func convert(m *discordgo.MessageCreate, selfID string) (chat.Message, bool) {
	if m.Message == nil || m.Author == nil || m.Author.Bot || m.Author.ID == selfID {
		return chat.Message{}, false
	}

	return chat.Message{
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
		Text:      m.Content,
		Direct:    m.GuildID == "",
	}, true
}
