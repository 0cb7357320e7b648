package line

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// ClientConfig carries the credentials and endpoints of the Messaging API.
type ClientConfig struct {
	ChannelAccessToken string
	APIEndpoint        string
	DataEndpoint       string
	HTTPClient         *http.Client
}

// Client implements reply and content retrieval on top of the LINE SDK.
type Client struct {
	api    *messaging_api.MessagingApiAPI
	blob   *messaging_api.MessagingApiBlobAPI
	logger *slog.Logger
}

// NewClient builds a Messaging API client. The token is required; empty
// endpoints fall back to the SDK defaults.
func NewClient(log *slog.Logger, cfg ClientConfig) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	token := strings.TrimSpace(cfg.ChannelAccessToken)
	if token == "" {
		return nil, fmt.Errorf("channel access token is required")
	}

	var apiOpts []messaging_api.MessagingApiAPIOption
	var blobOpts []messaging_api.MessagingApiBlobAPIOption
	if endpoint := strings.TrimSpace(cfg.APIEndpoint); endpoint != "" {
		apiOpts = append(apiOpts, messaging_api.WithEndpoint(endpoint))
	}
	if endpoint := strings.TrimSpace(cfg.DataEndpoint); endpoint != "" {
		blobOpts = append(blobOpts, messaging_api.WithBlobEndpoint(endpoint))
	}
	if cfg.HTTPClient != nil {
		apiOpts = append(apiOpts, messaging_api.WithHTTPClient(cfg.HTTPClient))
		blobOpts = append(blobOpts, messaging_api.WithBlobHTTPClient(cfg.HTTPClient))
	}

	api, err := messaging_api.NewMessagingApiAPI(token, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("create messaging api client: %w", err)
	}
	blob, err := messaging_api.NewMessagingApiBlobAPI(token, blobOpts...)
	if err != nil {
		return nil, fmt.Errorf("create messaging api blob client: %w", err)
	}
	return &Client{
		api:    api,
		blob:   blob,
		logger: log.With(slog.String("client", "line")),
	}, nil
}

// Reply sends msgs as one reply call bound to token. The payloads are
// validated before any network call.
func (c *Client) Reply(ctx context.Context, token string, msgs ...ReplyMessage) error {
	if strings.TrimSpace(token) == "" {
		return &PlatformAPIError{Op: "reply", Err: fmt.Errorf("reply token is required")}
	}
	if err := ValidateReplies(msgs); err != nil {
		return &PlatformAPIError{Op: "reply", Err: err}
	}
	out := make([]messaging_api.MessageInterface, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, toSDKMessage(msg))
	}

	resp, _, err := c.api.WithContext(ctx).ReplyMessageWithHttpInfo(&messaging_api.ReplyMessageRequest{
		ReplyToken: token,
		Messages:   out,
	})
	if err != nil {
		apiErr := &PlatformAPIError{Op: "reply", Err: err}
		if resp != nil {
			apiErr.StatusCode = resp.StatusCode
		}
		return apiErr
	}
	c.logger.Debug("reply sent", slog.Int("messages", len(out)))
	return nil
}

// Content opens the binary content of a platform-hosted message. The caller
// must close the returned reader.
func (c *Client) Content(ctx context.Context, messageID string) (io.ReadCloser, error) {
	if strings.TrimSpace(messageID) == "" {
		return nil, &PlatformAPIError{Op: "get content", Err: fmt.Errorf("message id is required")}
	}
	resp, body, err := c.blob.WithContext(ctx).GetMessageContentWithHttpInfo(messageID)
	if err != nil {
		apiErr := &PlatformAPIError{Op: "get content", Err: err}
		if resp != nil {
			apiErr.StatusCode = resp.StatusCode
			if resp.Body != nil {
				_ = resp.Body.Close()
			}
		}
		return nil, apiErr
	}
	if body == nil {
		body = resp
	}
	return body.Body, nil
}

func toSDKMessage(msg ReplyMessage) messaging_api.MessageInterface {
	switch m := msg.(type) {
	case TextReply:
		return messaging_api.TextMessage{Text: m.Text}
	case ImageReply:
		return messaging_api.ImageMessage{
			OriginalContentUrl: m.OriginalContentURL,
			PreviewImageUrl:    m.PreviewImageURL,
		}
	case VideoReply:
		return messaging_api.VideoMessage{
			OriginalContentUrl: m.OriginalContentURL,
			PreviewImageUrl:    m.PreviewImageURL,
		}
	case AudioReply:
		return messaging_api.AudioMessage{
			OriginalContentUrl: m.OriginalContentURL,
			Duration:           m.Duration,
		}
	case LocationReply:
		return messaging_api.LocationMessage{
			Title:     m.Title,
			Address:   m.Address,
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
		}
	case StickerReply:
		return messaging_api.StickerMessage{
			PackageId: m.PackageID,
			StickerId: m.StickerID,
		}
	default:
		panic(fmt.Sprintf("line: unhandled reply type %T", msg))
	}
}
