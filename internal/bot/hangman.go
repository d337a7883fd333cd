package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"traderjoe/internal/chat"
	"traderjoe/internal/hangman"

	"github.com/pkg/errors"
)

// Games holds at most one hangman game per channel.
type Games struct {
	games map[string]*hangman.Game
	mu    sync.Mutex
}

func NewGames() *Games {
	return &Games{games: make(map[string]*hangman.Game)}
}

// Start returns false if a game is already running in the channel.
func (g *Games) Start(channelID, word string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.games[channelID]; ok {
		return "", false
	}

	game := hangman.New(word)
	g.games[channelID] = game
	return game.Display(), true
}

// Play runs fun on the channel game under the lock and removes the game once fun returns true.
// It returns false when no game is running.
func (g *Games) Play(channelID string, fun func(game *hangman.Game) (finished bool)) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	game, ok := g.games[channelID]
	if !ok {
		return false
	}

	if fun(game) {
		delete(g.games, channelID)
	}

	return true
}

func (g *Games) Running(channelID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.games[channelID]
	return ok
}

func (b *Bot) Hangman(ctx context.Context, transport chat.Transport, cmd *chat.Command) error {
	switch strings.ToLower(cmd.Arg(0)) {
	case "start":
		words := b.Words
		if len(words) == 0 {
			words = hangman.DefaultWords
		}

		display, ok := b.Games.Start(cmd.ChannelID, words[b.random().Intn(len(words))])
		if !ok {
			return cmd.Reply(ctx, transport, "⚠️ A game is already running in this channel.")
		}

		return cmd.Reply(ctx, transport, "🎉 Hangman started! Guess letters with `!hangman guess <letter>`.\n"+display)

	case "guess":
		var reply string
		if !b.Games.Play(cmd.ChannelID, func(game *hangman.Game) bool {
			var finished bool
			reply, finished = guessReply(game, cmd.Arg(1))
			return finished
		}) {
			reply = "⚠️ No active game. Start one with `!hangman start`."
		}

		return cmd.Reply(ctx, transport, reply)

	default:
		return cmd.Reply(ctx, transport, "Usage: `!hangman start` or `!hangman guess <letter>`.")
	}
}

func guessReply(game *hangman.Game, letter string) (string, bool) {
	result, err := game.Guess(letter)
	switch {
	case errors.Is(err, hangman.ErrInvalidLetter):
		return "⚠️ Please guess a single letter: `!hangman guess <letter>`.", false
	case errors.Is(err, hangman.ErrAlreadyGuessed):
		return "You already guessed that letter.", false
	case err != nil:
		return fmt.Sprintf("⚠️ %v.", err), true
	}

	switch result {
	case hangman.Won:
		return fmt.Sprintf("🎉 You won! The word was **%s**.", game.Word), true
	case hangman.Lost:
		return fmt.Sprintf("💀 You lost! The word was **%s**.", game.Word), true
	case hangman.Wrong:
		return fmt.Sprintf("❌ Wrong guess! %s (Wrong guesses: %d/%d)", game.Display(), game.WrongGuesses(), hangman.MaxWrong), false
	default:
		return "✅ Good guess! " + game.Display(), false
	}
}
