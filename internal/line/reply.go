package line

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MaxReplyMessages is the number of messages the platform accepts per reply.
const MaxReplyMessages = 5

// ReplyMessage is one payload of a reply call. The set of implementations is
// closed: TextReply, ImageReply, VideoReply, AudioReply, LocationReply and
// StickerReply.
type ReplyMessage interface {
	Kind() MessageKind
	sealedReply()
}

type TextReply struct {
	Text string `validate:"required,max=5000"`
}

type ImageReply struct {
	OriginalContentURL string `validate:"required,url,max=2000"`
	PreviewImageURL    string `validate:"required,url,max=2000"`
}

type VideoReply struct {
	OriginalContentURL string `validate:"required,url,max=2000"`
	PreviewImageURL    string `validate:"required,url,max=2000"`
}

type AudioReply struct {
	OriginalContentURL string `validate:"required,url,max=2000"`
	// Duration is in milliseconds.
	Duration int64 `validate:"gt=0"`
}

type LocationReply struct {
	Title     string  `validate:"required,max=100"`
	Address   string  `validate:"required,max=100"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

type StickerReply struct {
	PackageID string `validate:"required"`
	StickerID string `validate:"required"`
}

func (TextReply) Kind() MessageKind     { return MessageText }
func (ImageReply) Kind() MessageKind    { return MessageImage }
func (VideoReply) Kind() MessageKind    { return MessageVideo }
func (AudioReply) Kind() MessageKind    { return MessageAudio }
func (LocationReply) Kind() MessageKind { return MessageLocation }
func (StickerReply) Kind() MessageKind  { return MessageSticker }

func (TextReply) sealedReply()     {}
func (ImageReply) sealedReply()    {}
func (VideoReply) sealedReply()    {}
func (AudioReply) sealedReply()    {}
func (LocationReply) sealedReply() {}
func (StickerReply) sealedReply()  {}

// TextReplies wraps each text in a TextReply.
func TextReplies(texts ...string) []ReplyMessage {
	out := make([]ReplyMessage, 0, len(texts))
	for _, text := range texts {
		out = append(out, TextReply{Text: text})
	}
	return out
}

var replyValidator = validator.New()

// ValidateReplies checks the message count and the required fields of each
// payload against the platform's reply schema.
func ValidateReplies(msgs []ReplyMessage) error {
	if len(msgs) == 0 {
		return fmt.Errorf("reply requires at least one message")
	}
	if len(msgs) > MaxReplyMessages {
		return fmt.Errorf("reply accepts at most %d messages, got %d", MaxReplyMessages, len(msgs))
	}
	for i, msg := range msgs {
		if msg == nil {
			return fmt.Errorf("message %d is nil", i)
		}
		if err := replyValidator.Struct(msg); err != nil {
			return fmt.Errorf("message %d (%s): %w", i, msg.Kind(), err)
		}
	}
	return nil
}
