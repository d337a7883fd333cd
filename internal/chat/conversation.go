package chat

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var ErrAlreadyAwaiting = errors.New("already awaiting an answer")

type questionKey struct {
	channelID string
	authorID  string
}

type question struct {
	accept func(Message) bool
	answer chan Message
}

// Conversations tracks pending questions, at most one per author and channel.
type Conversations struct {
	questions map[questionKey]*question
	mu        sync.RWMutex
}

func NewConversations() *Conversations {
	return &Conversations{questions: make(map[questionKey]*question)}
}

// Await blocks until authorID posts a message in channelID accepted by accept, or ctx is done.
func (c *Conversations) Await(ctx context.Context, channelID, authorID string, accept func(Message) bool) (Message, error) {
	key := questionKey{channelID, authorID}
	q := &question{accept: accept, answer: make(chan Message, 1)}
	if err := c.add(key, q); err != nil {
		return Message{}, err
	}

	defer c.remove(key, q)

	select {
	case <-ctx.Done():
		return Message{}, ctx.Err()
	case msg := <-q.answer:
		return msg, nil
	}
}

// Answer returns true if msg was delivered to a pending question.
func (c *Conversations) Answer(msg Message) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.questions[questionKey{msg.ChannelID, msg.AuthorID}]
	if !ok || q.accept != nil && !q.accept(msg) {
		return false
	}

	select {
	case q.answer <- msg:
		return true
	default:
		return false
	}
}

func (c *Conversations) add(key questionKey, q *question) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.questions == nil {
		c.questions = make(map[questionKey]*question)
	}

	if _, ok := c.questions[key]; ok {
		return ErrAlreadyAwaiting
	}

	c.questions[key] = q
	return nil
}

func (c *Conversations) remove(key questionKey, q *question) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.questions[key] == q {
		delete(c.questions, key)
	}
}
