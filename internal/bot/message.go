package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/memohai/linehook/internal/line"
	"github.com/memohai/linehook/internal/media"
)

func (d *Dispatcher) handleMessage(ctx context.Context, event line.MessageEvent) error {
	log := d.log(ctx).With(
		slog.String("message_type", string(event.Message.Kind())),
		slog.String("message_id", event.Message.MessageID()),
	)
	log.Debug("handling message")

	token := event.ReplyToken
	switch m := event.Message.(type) {
	case line.TextMessage:
		return d.replyText(ctx, token, m.Text)
	case line.LocationMessage:
		return d.replier.Reply(ctx, token, line.LocationReply{
			Title:     m.Title,
			Address:   m.Address,
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
		})
	case line.StickerMessage:
		return d.replier.Reply(ctx, token, line.StickerReply{
			PackageID: m.PackageID,
			StickerID: m.StickerID,
		})
	case line.ImageMessage:
		original, preview, err := d.resolveContent(ctx, m.ID, m.ContentProvider, media.MediaTypeImage)
		if err != nil {
			return err
		}
		return d.replier.Reply(ctx, token, line.ImageReply{
			OriginalContentURL: original,
			PreviewImageURL:    preview,
		})
	case line.VideoMessage:
		original, preview, err := d.resolveContent(ctx, m.ID, m.ContentProvider, media.MediaTypeVideo)
		if err != nil {
			return err
		}
		return d.replier.Reply(ctx, token, line.VideoReply{
			OriginalContentURL: original,
			PreviewImageURL:    preview,
		})
	case line.AudioMessage:
		original, _, err := d.resolveContent(ctx, m.ID, m.ContentProvider, media.MediaTypeAudio)
		if err != nil {
			return err
		}
		return d.replier.Reply(ctx, token, line.AudioReply{
			OriginalContentURL: original,
			Duration:           m.Duration,
		})
	default:
		return fmt.Errorf("%w: %T", line.ErrUnknownMessageKind, event.Message)
	}
}

// resolveContent returns the original and preview URLs to reply with.
// Platform-hosted content is downloaded first; external content is forwarded
// as given. Images preview themselves and videos use the fixed placeholder.
func (d *Dispatcher) resolveContent(ctx context.Context, messageID string, provider line.ContentProvider, mediaType media.MediaType) (string, string, error) {
	switch provider.Type {
	case line.ProviderLine:
		if d.media == nil {
			return "", "", fmt.Errorf("media downloader not configured")
		}
		asset, err := d.media.Download(ctx, messageID, mediaType)
		if err != nil {
			return "", "", err
		}
		switch mediaType {
		case media.MediaTypeImage:
			return asset.URL, asset.URL, nil
		case media.MediaTypeVideo:
			return asset.URL, d.media.AccessPath(d.videoPreview), nil
		default:
			return asset.URL, "", nil
		}
	case line.ProviderExternal:
		return provider.OriginalContentURL, provider.PreviewImageURL, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedContentProvider, provider.Type)
	}
}
