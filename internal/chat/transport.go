package chat

import "context"

// MaxMessageLength is the longest text a single message may carry.
const MaxMessageLength = 2000

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Transport delivers messages to channels.
// A text consisting of a single URL is expected to be embedded by the transport.
type Transport interface {
	SendText(ctx context.Context, channelID, text string) error
	SendFile(ctx context.Context, channelID, text string, file File) error
}
