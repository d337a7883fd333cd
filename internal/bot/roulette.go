package bot

import (
	"context"
	"fmt"

	"traderjoe/internal/chat"
	"traderjoe/internal/media"
	"traderjoe/internal/roulette"
	"traderjoe/internal/storage"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"
)

const FeedFailureText = "😕 Failed to fetch images from Reddit."

// RedditRoulette delivers a random image or video from a random configured source.
func (b *Bot) RedditRoulette(ctx context.Context, transport chat.Transport, cmd *chat.Command) error {
	if b.Selector == nil {
		return cmd.Reply(ctx, transport, FeedFailureText)
	}

	log := logger(ctx)
	pick, err := b.Selector.PickOne(ctx, b.Sources.Names())
	if err != nil {
		var (
			notFound  *roulette.NotFoundError
			feedError *roulette.FeedError
		)

		switch {
		case errors.As(err, &notFound):
			log.Infof("not found: %v", err)
			return cmd.Reply(ctx, transport, b.notFoundText(notFound))
		case errors.As(err, &feedError):
			log.Warnf("feed: %v", err)
			return cmd.Reply(ctx, transport, FeedFailureText)
		default:
			log.Errorf("pick: %v", err)
			return cmd.Reply(ctx, transport, FeedFailureText)
		}
	}

	caption := fmt.Sprintf("🎲 From r/%s", pick.Source)
	delivery := &storage.Delivery{
		ChannelID: cmd.ChannelID,
		Source:    pick.Source,
		PostID:    pick.Post.ID,
		Kind:      pick.Media.Kind().String(),
		Sensitive: b.Sources.IsSensitive(pick.Source),
	}

	if pick.Post.Permalink != "" {
		delivery.Permalink = null.StringFrom(pick.Post.Permalink)
	}

	switch resolved := pick.Media.(type) {
	case *media.LinkableVideo:
		delivery.URL = resolved.URL
		if err := cmd.Reply(ctx, transport, caption+"\n"+resolved.URL); err != nil {
			return err
		}

	case *media.DownloadedImage:
		delivery.URL = pick.Post.URL
		delivery.Filename = null.StringFrom(resolved.Filename)
		delivery.Size = null.IntFrom(int64(len(resolved.Bytes)))
		file := chat.File{
			Name:        resolved.Filename,
			ContentType: mimetype.Detect(resolved.Bytes).String(),
			Data:        resolved.Bytes,
		}

		log.Debugf("uploading %s (%s, %s)", file.Name, file.ContentType, humanize.IBytes(uint64(len(file.Data))))
		if err := transport.SendFile(ctx, cmd.ChannelID, caption, file); err != nil {
			return errors.Wrap(err, "send file")
		}

	default:
		return errors.Errorf("unexpected media %T", pick.Media)
	}

	b.record(ctx, delivery)
	return nil
}

func (b *Bot) notFoundText(err *roulette.NotFoundError) string {
	switch err.Reason {
	case roulette.NoSources:
		return "⚠️ No sources configured!"
	case roulette.EmptySource:
		return fmt.Sprintf("⚠️ No posts found in r/%s!", err.Source)
	default:
		limit := b.MaxImageSize
		if limit <= 0 {
			limit = media.MaxImageSize
		}

		return fmt.Sprintf("⚠️ No images found in r/%s under %s!", err.Source, humanize.IBytes(uint64(limit)))
	}
}

func (b *Bot) record(ctx context.Context, delivery *storage.Delivery) {
	if b.Deliveries == nil {
		return
	}

	id, err := uuid.NewV4()
	if err != nil {
		logger(ctx).Warnf("generate delivery id: %v", err)
		return
	}

	delivery.ID = id.String()
	delivery.CreatedAt = b.now()
	if err := b.Deliveries.Save(ctx, delivery); err != nil {
		logger(ctx).Warnf("save delivery: %v", err)
	}
}
