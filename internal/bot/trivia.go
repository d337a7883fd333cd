package bot

import (
	"context"
	"fmt"
	"strings"

	"traderjoe/internal/3rdparty/opentdb"
	"traderjoe/internal/chat"

	"github.com/pkg/errors"
)

func optionLetter(i int) string {
	return string(rune('A' + i))
}

// TriviaCommand asks a multiple-choice question and waits for the invoker's answer.
func (b *Bot) TriviaCommand(ctx context.Context, transport chat.Transport, cmd *chat.Command) error {
	if b.Trivia == nil {
		return cmd.Reply(ctx, transport, "⚠️ Failed to fetch trivia question.")
	}

	question, err := b.Trivia.GetQuestion(ctx)
	switch {
	case errors.Is(err, opentdb.ErrNoResults):
		return cmd.Reply(ctx, transport, "⚠️ No trivia questions found.")
	case err != nil:
		logger(ctx).Warnf("trivia: %v", err)
		return cmd.Reply(ctx, transport, "⚠️ Failed to fetch trivia question.")
	}

	options := append(append([]string{}, question.IncorrectAnswers...), question.CorrectAnswer)
	b.random().Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	timeout := b.TriviaTimeout
	if timeout <= 0 {
		timeout = DefaultTriviaTimeout
	}

	lines := make([]string, len(options))
	for i, option := range options {
		lines[i] = fmt.Sprintf("%s. %s", optionLetter(i), option)
	}

	text := fmt.Sprintf("❓ Trivia: %s\n%s\nReply with the letter of your answer within %d seconds.",
		question.Question, strings.Join(lines, "\n"), int(timeout.Seconds()))

	accept := func(msg chat.Message) bool {
		return answerIndex(msg.Text, len(options)) >= 0
	}

	if err := cmd.Reply(ctx, transport, text); err != nil {
		return err
	}

	awaitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg, err := b.Conversations.Await(awaitCtx, cmd.ChannelID, cmd.AuthorID, accept)
	switch {
	case errors.Is(err, chat.ErrAlreadyAwaiting):
		return cmd.Reply(ctx, transport, "⚠️ Answer your current question first!")
	case ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		return cmd.Reply(ctx, transport, fmt.Sprintf("⏰ Time's up! The correct answer was **%s**.", question.CorrectAnswer))
	}

	if options[answerIndex(msg.Text, len(options))] == question.CorrectAnswer {
		return cmd.Reply(ctx, transport, "✅ Correct! 🎉")
	}

	return cmd.Reply(ctx, transport, fmt.Sprintf("❌ Wrong! The correct answer was **%s**.", question.CorrectAnswer))
}

func answerIndex(text string, count int) int {
	text = strings.ToUpper(strings.TrimSpace(text))
	for i := 0; i < count; i++ {
		if text == optionLetter(i) {
			return i
		}
	}

	return -1
}
