// Package bot routes LINE webhook events to their handlers and sends the
// replies.
package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/memohai/linehook/internal/line"
	"github.com/memohai/linehook/internal/media"
)

// Greeting is the reply to a follow event.
const Greeting = "お友だち追加ありがとうございます！"

// ErrUnsupportedContentProvider indicates a media message whose content
// provider is neither platform-hosted nor external.
var ErrUnsupportedContentProvider = errors.New("unsupported content provider")

// Replier sends reply payloads bound to a reply token.
type Replier interface {
	Reply(ctx context.Context, token string, msgs ...line.ReplyMessage) error
}

// Downloader stores platform-hosted media and exposes it by URL.
type Downloader interface {
	Download(ctx context.Context, messageID string, mediaType media.MediaType) (media.Asset, error)
	AccessPath(name string) string
}

// Options tunes reply construction.
type Options struct {
	// VideoPreview is the stored file name used as preview image for videos
	// downloaded from the platform.
	VideoPreview string
}

// Dispatcher handles webhook events.
type Dispatcher struct {
	replier      Replier
	media        Downloader
	videoPreview string
	logger       *slog.Logger
}

// NewDispatcher creates a dispatcher replying through replier and storing
// media through downloader.
func NewDispatcher(log *slog.Logger, replier Replier, downloader Downloader, opts Options) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	preview := opts.VideoPreview
	if preview == "" {
		preview = "preview.png"
	}
	return &Dispatcher{
		replier:      replier,
		media:        downloader,
		videoPreview: preview,
		logger:       log.With(slog.String("service", "dispatcher")),
	}
}

// HandleBatch dispatches every event concurrently and waits for all of them.
// It returns the first failure; the other events still run to completion.
func (d *Dispatcher) HandleBatch(ctx context.Context, events []json.RawMessage) error {
	log := d.log(ctx)
	var g errgroup.Group
	for i, raw := range events {
		g.Go(func() error {
			if err := d.Dispatch(ctx, raw); err != nil {
				log.Error("event failed", slog.Int("index", i), slog.Any("error", err))
				return fmt.Errorf("event %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Dispatch decodes and handles one raw event. Events whose reply token is a
// run of one repeated character are verification probes: they are logged
// and nothing else happens.
func (d *Dispatcher) Dispatch(ctx context.Context, raw json.RawMessage) error {
	header, err := line.ParseHeader(raw)
	if err != nil {
		return err
	}
	if IsProbeToken(header.ReplyToken) {
		d.log(ctx).Info("test hook received", slog.String("message", string(header.Message)))
		return nil
	}
	event, err := line.ParseEvent(raw)
	if err != nil {
		return err
	}
	return d.HandleEvent(ctx, event)
}

// HandleEvent performs the action for one event.
func (d *Dispatcher) HandleEvent(ctx context.Context, event line.Event) error {
	log := d.log(ctx)
	switch e := event.(type) {
	case line.MessageEvent:
		return d.handleMessage(ctx, e)
	case line.FollowEvent:
		return d.replyText(ctx, e.ReplyToken, Greeting)
	case line.UnfollowEvent:
		log.Info("unfollowed", slog.String("user_id", e.Source.UserID), slog.Int64("timestamp", e.Timestamp))
		return nil
	case line.JoinEvent:
		return d.replyText(ctx, e.ReplyToken, "Joined "+string(e.Source.Type))
	case line.LeaveEvent:
		log.Info("left", slog.String("source_type", string(e.Source.Type)), slog.String("source_id", e.Source.ID()))
		return nil
	case line.PostbackEvent:
		text, err := postbackText(e.Postback)
		if err != nil {
			return err
		}
		return d.replyText(ctx, e.ReplyToken, text)
	case line.BeaconEvent:
		return d.replyText(ctx, e.ReplyToken, "Got beacon: "+e.Beacon.HWID)
	default:
		return fmt.Errorf("%w: %T", line.ErrUnknownEventKind, event)
	}
}

func (d *Dispatcher) replyText(ctx context.Context, token string, texts ...string) error {
	return d.replier.Reply(ctx, token, line.TextReplies(texts...)...)
}

// postbackText echoes the postback data; date/time picker results get their
// params appended. Picker data without params is echoed bare.
func postbackText(pb line.Postback) (string, error) {
	switch pb.Data {
	case "DATE", "TIME", "DATETIME":
		if len(pb.Params) == 0 {
			return pb.Data, nil
		}
		params, err := json.Marshal(pb.Params)
		if err != nil {
			return "", fmt.Errorf("encode postback params: %w", err)
		}
		return pb.Data + "(" + string(params) + ")", nil
	default:
		return pb.Data, nil
	}
}

// IsProbeToken reports whether token is non-empty and made of a single
// repeated character, as sent by the console's webhook verification.
func IsProbeToken(token string) bool {
	if token == "" {
		return false
	}
	var first rune
	for i, r := range token {
		if i == 0 {
			first = r
			continue
		}
		if r != first {
			return false
		}
	}
	return true
}
