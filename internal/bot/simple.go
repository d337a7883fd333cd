package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"traderjoe/internal/chat"

	"github.com/pkg/errors"
)

const HelpText = "🛠 **Available Commands:**\n" +
	"• `!probability <sentence>` – Get a random probability score for your sentence.\n" +
	"• `!joe <question>` – Ask the AI anything you want.\n" +
	"• `!redditroulette` – Spin the Reddit wheel for a spicy meme.\n" +
	"• `!trivia` – Test your knowledge with a trivia question.\n" +
	"• `!hangman start` / `!hangman guess <letter>` – Play Hangman together.\n" +
	"• `!hack <username>` – Simulate a fake hacker mode.\n" +
	"• `!stats` – See what the roulette delivered in this channel.\n" +
	"• `!help` – Show this help message. 😊"

const AIFailureText = "⚠️ Mini Aoruen Crashed The Car. Try again shortly."

var fakeLogs = []string{
	"Accessing mainframe...",
	"Bypassing firewall...",
	"Injecting malware...",
	"Extracting data...",
	"Spoofing IP address...",
	"Overriding security protocols...",
	"Decrypting passwords...",
	"Uploading ransomware...",
	"Launching DDoS attack...",
	"Compiling exploit...",
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func (b *Bot) Help(ctx context.Context, transport chat.Transport, cmd *chat.Command) error {
	return cmd.Reply(ctx, transport, HelpText)
}

// Normalize lower-cases the sentence and collapses whitespace.
func Normalize(sentence string) string {
	return strings.Join(strings.Fields(strings.ToLower(sentence)), " ")
}

func (b *Bot) Probability(ctx context.Context, transport chat.Transport, cmd *chat.Command) error {
	sentence := Normalize(cmd.Payload)
	if sentence == "" {
		return cmd.Reply(ctx, transport, "Usage: `!probability <sentence>`")
	}

	result := b.random().Float64() * 100
	return cmd.Reply(ctx, transport, fmt.Sprintf("🔍 Probability for: \"%s\"\n🎯 Result: **%.2f%%**", sentence, result))
}

func (b *Bot) Joe(ctx context.Context, transport chat.Transport, cmd *chat.Command) error {
	if cmd.Payload == "" {
		return cmd.Reply(ctx, transport, "Usage: `!joe <question>`")
	}

	if b.AI == nil {
		return cmd.Reply(ctx, transport, AIFailureText)
	}

	reply, err := b.AI.Ask(ctx, cmd.Payload)
	if err != nil {
		logger(ctx).Errorf("ai: %v", err)
		return cmd.Reply(ctx, transport, AIFailureText)
	}

	return cmd.Reply(ctx, transport, reply)
}

func (b *Bot) Hack(ctx context.Context, transport chat.Transport, cmd *chat.Command) error {
	username := cmd.Arg(0)
	if username == "" {
		return cmd.Reply(ctx, transport, "Usage: `!hack <username>`")
	}

	if err := cmd.Reply(ctx, transport, fmt.Sprintf("Initiating hack on **%s**...", username)); err != nil {
		return err
	}

	delay := b.HackDelay
	if delay == 0 {
		delay = DefaultHackDelay
	}

	random := b.random()
	for i := 0; i < 5; i++ {
		if err := sleep(ctx, delay); err != nil {
			return err
		}

		if err := cmd.Reply(ctx, transport, "`"+fakeLogs[random.Intn(len(fakeLogs))]+"`"); err != nil {
			return err
		}
	}

	password := make([]byte, 10)
	for i := range password {
		password[i] = passwordAlphabet[random.Intn(len(passwordAlphabet))]
	}

	if err := cmd.Reply(ctx, transport, fmt.Sprintf("💾 Password found: **%s** 🔓", password)); err != nil {
		return err
	}

	return cmd.Reply(ctx, transport, fmt.Sprintf("✅ Hack complete on **%s**!", username))
}

func (b *Bot) Stats(ctx context.Context, transport chat.Transport, cmd *chat.Command) error {
	if b.Deliveries == nil {
		return cmd.Reply(ctx, transport, "📊 Delivery log is disabled.")
	}

	stats, err := b.Deliveries.Stats(ctx, cmd.ChannelID)
	if err != nil {
		logger(ctx).Errorf("stats: %v", err)
		return cmd.Reply(ctx, transport, "⚠️ Failed to load stats.")
	}

	if len(stats) == 0 {
		return cmd.Reply(ctx, transport, "📊 Nothing delivered in this channel yet.")
	}

	var text strings.Builder
	text.WriteString("📊 **Roulette deliveries:**")
	for _, stat := range stats {
		text.WriteString(fmt.Sprintf("\n• r/%s: %d", stat.Source, stat.Count))
	}

	return cmd.Reply(ctx, transport, text.String())
}

func sleep(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "interrupted")
	case <-timer.C:
		return nil
	}
}
