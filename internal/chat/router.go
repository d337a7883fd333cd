package chat

import (
	"context"

	"traderjoe/internal/logx"
)

const (
	DefaultPrefix = "!"
	DirectRefusal = "🙅‍♂️ Sorry, I don’t respond to DMs. Try using me in a server!"
)

// Router dispatches incoming messages to pending conversations and commands.
type Router struct {
	Prefix        string
	Commands      CommandListener
	Conversations *Conversations
}

func (r *Router) OnMessage(ctx context.Context, transport Transport, msg Message) {
	if r.Conversations != nil && !msg.Direct && r.Conversations.Answer(msg) {
		return
	}

	prefix := r.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	cmd, ok := ParseCommand(prefix, msg)
	if !ok {
		return
	}

	log := logx.Get("chat.router").WithField("command", cmd.Key)
	if msg.Direct {
		if err := transport.SendText(ctx, msg.ChannelID, DirectRefusal); err != nil {
			log.Warnf("send refusal to %s: %v", msg.ChannelID, err)
		}

		return
	}

	if err := r.Commands.OnCommand(ctx, transport, cmd); err != nil {
		log.Errorf("handle %s: %v", cmd, err)
	}
}
