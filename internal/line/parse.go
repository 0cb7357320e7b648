package line

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEventsNotArray indicates a callback body whose events field is absent or
// not a JSON array.
var ErrEventsNotArray = errors.New("events must be an array")

// Callback is the webhook request body. Events are kept raw so each one can
// be decoded, and fail, independently.
type Callback struct {
	Destination string
	Events      []json.RawMessage
}

// ParseCallback decodes a webhook body. It fails with ErrEventsNotArray when
// events is missing, null or any non-array value.
func ParseCallback(body []byte) (Callback, error) {
	var envelope struct {
		Destination string          `json:"destination"`
		Events      json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Callback{}, fmt.Errorf("decode callback: %w", err)
	}
	raw := bytes.TrimSpace(envelope.Events)
	if len(raw) == 0 || raw[0] != '[' {
		return Callback{Destination: envelope.Destination}, ErrEventsNotArray
	}
	var events []json.RawMessage
	if err := json.Unmarshal(raw, &events); err != nil {
		return Callback{Destination: envelope.Destination}, fmt.Errorf("decode events: %w", err)
	}
	return Callback{Destination: envelope.Destination, Events: events}, nil
}

// Header is the part of an event that can be read without knowing its kind.
type Header struct {
	Type       EventKind       `json:"type"`
	ReplyToken string          `json:"replyToken"`
	Message    json.RawMessage `json:"message,omitempty"`
}

// ParseHeader decodes only the kind-independent fields of an event.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := json.Unmarshal(data, &h); err != nil {
		return Header{}, fmt.Errorf("decode event header: %w", err)
	}
	return h, nil
}

// ParseEvent decodes one webhook event into its concrete type.
func ParseEvent(data []byte) (Event, error) {
	var raw struct {
		EventBase
		Message  json.RawMessage `json:"message"`
		Postback *Postback       `json:"postback"`
		Beacon   *Beacon         `json:"beacon"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	base := raw.EventBase
	switch base.Type {
	case EventMessage:
		msg, err := ParseMessage(raw.Message)
		if err != nil {
			return nil, err
		}
		return MessageEvent{EventBase: base, Message: msg}, nil
	case EventFollow:
		return FollowEvent{EventBase: base}, nil
	case EventUnfollow:
		return UnfollowEvent{EventBase: base}, nil
	case EventJoin:
		return JoinEvent{EventBase: base}, nil
	case EventLeave:
		return LeaveEvent{EventBase: base}, nil
	case EventPostback:
		if raw.Postback == nil {
			return nil, fmt.Errorf("postback event without postback payload")
		}
		return PostbackEvent{EventBase: base, Postback: *raw.Postback}, nil
	case EventBeacon:
		if raw.Beacon == nil {
			return nil, fmt.Errorf("beacon event without beacon payload")
		}
		return BeaconEvent{EventBase: base, Beacon: *raw.Beacon}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventKind, string(data))
	}
}

// ParseMessage decodes the message object of a message event.
func ParseMessage(data []byte) (Message, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, fmt.Errorf("message event without message payload")
	}
	var head struct {
		Type MessageKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	switch head.Type {
	case MessageText:
		return decodeMessage[TextMessage](data)
	case MessageImage:
		return decodeMessage[ImageMessage](data)
	case MessageVideo:
		return decodeMessage[VideoMessage](data)
	case MessageAudio:
		return decodeMessage[AudioMessage](data)
	case MessageLocation:
		return decodeMessage[LocationMessage](data)
	case MessageSticker:
		return decodeMessage[StickerMessage](data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessageKind, string(data))
	}
}

func decodeMessage[T Message](data []byte) (Message, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode %s message: %w", msg.Kind(), err)
	}
	return msg, nil
}
