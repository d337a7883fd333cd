// Package hangman implements a single hangman round.
package hangman

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const MaxWrong = 6

var (
	DefaultWords = []string{"discord", "python", "bot", "openai", "hangman", "asyncio"}

	ErrAlreadyGuessed = errors.New("already guessed")
	ErrInvalidLetter  = errors.New("invalid letter")
	ErrFinished       = errors.New("game finished")
)

type Result int

const (
	Correct Result = iota
	Wrong
	Won
	Lost
)

func (r Result) String() string {
	switch r {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

type Game struct {
	Word    string
	guessed map[rune]bool
	wrong   int
	over    bool
}

func New(word string) *Game {
	return &Game{
		Word:    strings.ToLower(word),
		guessed: make(map[rune]bool),
	}
}

// Guess accepts a single alphabetic letter, case-insensitive.
func (g *Game) Guess(letter string) (Result, error) {
	runes := []rune(strings.ToLower(letter))
	if len(runes) != 1 || !unicode.IsLetter(runes[0]) {
		return 0, ErrInvalidLetter
	}

	if g.over {
		return 0, ErrFinished
	}

	r := runes[0]
	if g.guessed[r] {
		return 0, ErrAlreadyGuessed
	}

	g.guessed[r] = true
	if !strings.ContainsRune(g.Word, r) {
		g.wrong++
		if g.wrong >= MaxWrong {
			g.over = true
			return Lost, nil
		}

		return Wrong, nil
	}

	for _, c := range g.Word {
		if !g.guessed[c] {
			return Correct, nil
		}
	}

	g.over = true
	return Won, nil
}

func (g *Game) WrongGuesses() int {
	return g.wrong
}

// Display renders the word with unguessed letters masked, e.g. "`b _ t`".
func (g *Game) Display() string {
	var b strings.Builder
	b.WriteRune('`')
	for i, c := range g.Word {
		if i > 0 {
			b.WriteRune(' ')
		}

		if g.guessed[c] {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}

	b.WriteRune('`')
	return b.String()
}
