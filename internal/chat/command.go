package chat

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"traderjoe/internal/logx"
)

// Message is an incoming chat message.
type Message struct {
	ChannelID string
	AuthorID  string
	Text      string

	// Direct is set for private conversations with the bot.
	Direct bool
}

// Command is a text bot command, e.g. "!hangman guess a".
type Command struct {
	ChannelID string
	AuthorID  string
	Key       string
	Payload   string
	Args      []string
}

// ParseCommand returns false when text does not start with prefix.
func ParseCommand(prefix string, msg Message) (*Command, bool) {
	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, prefix) || len(text) == len(prefix) {
		return nil, false
	}

	cmd := &Command{
		ChannelID: msg.ChannelID,
		AuthorID:  msg.AuthorID,
		Key:       text[len(prefix):],
		Args:      make([]string, 0),
	}

	if space := strings.IndexAny(cmd.Key, " \t\n"); space > 0 {
		cmd.Payload = strings.TrimSpace(cmd.Key[space+1:])
		cmd.Key = cmd.Key[:space]
	}

	cmd.Key = strings.ToLower(cmd.Key)
	if cmd.Payload == "" {
		return cmd, true
	}

	reader := csv.NewReader(strings.NewReader(cmd.Payload))
	reader.Comma = ' '
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	args, err := reader.Read()
	if err != nil {
		logx.Get("chat").Warnf("parse %s args: %v", cmd, err)
		cmd.Args = strings.Fields(cmd.Payload)
		return cmd, true
	}

	cmd.Args = args
	return cmd, true
}

func (cmd *Command) Arg(i int) string {
	if len(cmd.Args) > i {
		return cmd.Args[i]
	}

	return ""
}

func (cmd *Command) String() string {
	return fmt.Sprintf("%s [%s] from %s @ %s", cmd.Key, cmd.Payload, cmd.AuthorID, cmd.ChannelID)
}

// Reply sends text to the channel the command came from, split into transport-sized chunks.
func (cmd *Command) Reply(ctx context.Context, transport Transport, text string) error {
	for _, chunk := range Split(text, MaxMessageLength) {
		if err := transport.SendText(ctx, cmd.ChannelID, chunk); err != nil {
			return err
		}
	}

	return nil
}

type CommandListener interface {
	OnCommand(ctx context.Context, transport Transport, cmd *Command) error
}

type CommandListenerFunc func(context.Context, Transport, *Command) error

func (fun CommandListenerFunc) OnCommand(ctx context.Context, transport Transport, cmd *Command) error {
	return fun(ctx, transport, cmd)
}

type CommandRegistry map[string]CommandListener

func (r CommandRegistry) Add(key string, listener CommandListener) CommandRegistry {
	if _, ok := r[key]; ok {
		logx.Get("chat").Panicf("duplicate command handler for %s", key)
	}

	r[key] = listener
	return r
}

func (r CommandRegistry) AddFunc(key string, listener CommandListenerFunc) CommandRegistry {
	return r.Add(key, listener)
}

func (r CommandRegistry) OnCommand(ctx context.Context, transport Transport, cmd *Command) error {
	if listener, ok := r[cmd.Key]; ok {
		return listener.OnCommand(ctx, transport, cmd)
	}

	return nil
}
