// Package bot implements the chat commands.
package bot

import (
	"context"
	"math/rand"
	"time"

	"traderjoe/internal/3rdparty/openrouter"
	"traderjoe/internal/3rdparty/opentdb"
	"traderjoe/internal/chat"
	"traderjoe/internal/logx"
	"traderjoe/internal/media"
	"traderjoe/internal/metrics"
	"traderjoe/internal/roulette"
	"traderjoe/internal/storage"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTriviaTimeout = 15 * time.Second
	DefaultHackDelay     = 1500 * time.Millisecond
)

type Selector interface {
	PickOne(ctx context.Context, sources []string) (*roulette.Pick, error)
}

// Random is implemented by *rand.Rand.
type Random interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalRandom struct{}

func (globalRandom) Float64() float64                   { return rand.Float64() }
func (globalRandom) Intn(n int) int                     { return rand.Intn(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Bot holds the command dependencies. Nil optional dependencies disable the related features.
type Bot struct {
	Selector      Selector
	Sources       roulette.SourceConfig
	MaxImageSize  media.Size
	AI            openrouter.Interface
	Trivia        opentdb.Interface
	Deliveries    storage.Log
	Conversations *chat.Conversations
	Games         *Games
	Words         []string
	Random        Random
	Metrics       metrics.Registry
	Now           func() time.Time

	TriviaTimeout time.Duration
	HackDelay     time.Duration
}

func (b *Bot) String() string {
	return "bot"
}

// Commands returns the registry of all supported commands.
func (b *Bot) Commands() chat.CommandRegistry {
	if b.Conversations == nil {
		b.Conversations = chat.NewConversations()
	}

	if b.Games == nil {
		b.Games = NewGames()
	}

	return make(chat.CommandRegistry).
		Add("help", b.instrument("help", b.Help)).
		Add("probability", b.instrument("probability", b.Probability)).
		Add("joe", b.instrument("joe", b.Joe)).
		Add("redditroulette", b.instrument("redditroulette", b.RedditRoulette)).
		Add("trivia", b.instrument("trivia", b.TriviaCommand)).
		Add("hangman", b.instrument("hangman", b.Hangman)).
		Add("hack", b.instrument("hack", b.Hack)).
		Add("stats", b.instrument("stats", b.Stats))
}

type logKey struct{}

func logger(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(logKey{}).(*logrus.Entry); ok {
		return entry
	}

	return logx.Get("bot")
}

func (b *Bot) instrument(key string, fun chat.CommandListenerFunc) chat.CommandListener {
	return chat.CommandListenerFunc(func(ctx context.Context, transport chat.Transport, cmd *chat.Command) error {
		log := logx.Get(b.String()).
			WithField("command", key).
			WithField("channel", cmd.ChannelID)
		if id, err := uuid.NewV4(); err == nil {
			log = log.WithField("invocation", id.String())
		}

		start := b.now()
		log.Debugf("handling %s", cmd)
		err := fun(context.WithValue(ctx, logKey{}, log), transport, cmd)
		outcome := "ok"
		if err != nil {
			outcome = "error"
			log.Warnf("failed: %v", err)
		} else {
			log.WithField("elapsed", b.now().Sub(start)).Debugf("done")
		}

		if b.Metrics != nil {
			b.Metrics.Counter("commands_total", metrics.Labels{"command": key, "outcome": outcome}).Inc()
		}

		return err
	})
}

func (b *Bot) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}

	return time.Now()
}

func (b *Bot) random() Random {
	if b.Random != nil {
		return b.Random
	}

	return globalRandom{}
}
