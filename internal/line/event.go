// Package line models the LINE Messaging API webhook payloads and replies,
// and wraps the vendor SDK behind the two operations the bot depends on:
// reply-by-token and content-by-message-id.
package line

// EventKind is the webhook event type discriminator.
type EventKind string

const (
	EventMessage  EventKind = "message"
	EventFollow   EventKind = "follow"
	EventUnfollow EventKind = "unfollow"
	EventJoin     EventKind = "join"
	EventLeave    EventKind = "leave"
	EventPostback EventKind = "postback"
	EventBeacon   EventKind = "beacon"
)

// SourceType identifies where an event originated.
type SourceType string

const (
	SourceUser  SourceType = "user"
	SourceGroup SourceType = "group"
	SourceRoom  SourceType = "room"
)

// Source describes the user, group or room that produced an event.
type Source struct {
	Type    SourceType `json:"type"`
	UserID  string     `json:"userId,omitempty"`
	GroupID string     `json:"groupId,omitempty"`
	RoomID  string     `json:"roomId,omitempty"`
}

// ID returns the id matching the source type.
func (s Source) ID() string {
	switch s.Type {
	case SourceGroup:
		return s.GroupID
	case SourceRoom:
		return s.RoomID
	default:
		return s.UserID
	}
}

// DeliveryContext carries delivery metadata set by the platform.
type DeliveryContext struct {
	IsRedelivery bool `json:"isRedelivery"`
}

// EventBase holds the fields shared by every event.
type EventBase struct {
	Type            EventKind        `json:"type"`
	Mode            string           `json:"mode,omitempty"`
	Timestamp       int64            `json:"timestamp"`
	WebhookEventID  string           `json:"webhookEventId,omitempty"`
	ReplyToken      string           `json:"replyToken,omitempty"`
	Source          Source           `json:"source"`
	DeliveryContext *DeliveryContext `json:"deliveryContext,omitempty"`
}

// Event is one inbound webhook event. The set of implementations is closed:
// MessageEvent, FollowEvent, UnfollowEvent, JoinEvent, LeaveEvent,
// PostbackEvent and BeaconEvent.
type Event interface {
	Kind() EventKind
	Base() EventBase
	sealedEvent()
}

// MessageEvent is sent when a user sends a message.
type MessageEvent struct {
	EventBase
	Message Message
}

// FollowEvent is sent when a user adds the bot as a friend.
type FollowEvent struct {
	EventBase
}

// UnfollowEvent is sent when a user blocks the bot. It carries no usable
// reply token.
type UnfollowEvent struct {
	EventBase
}

// JoinEvent is sent when the bot joins a group or room.
type JoinEvent struct {
	EventBase
}

// LeaveEvent is sent when the bot is removed from a group or room.
type LeaveEvent struct {
	EventBase
}

// Postback is the application-defined payload of a postback action.
// Params is set by the date/time picker.
type Postback struct {
	Data   string            `json:"data"`
	Params map[string]string `json:"params,omitempty"`
}

// PostbackEvent is sent when a user triggers a postback action.
type PostbackEvent struct {
	EventBase
	Postback Postback
}

// Beacon describes a LINE Beacon interaction.
type Beacon struct {
	HWID string `json:"hwid"`
	Type string `json:"type"`
	DM   string `json:"dm,omitempty"`
}

// BeaconEvent is sent when a user enters the range of a LINE Beacon.
type BeaconEvent struct {
	EventBase
	Beacon Beacon
}

func (e MessageEvent) Kind() EventKind  { return EventMessage }
func (e FollowEvent) Kind() EventKind   { return EventFollow }
func (e UnfollowEvent) Kind() EventKind { return EventUnfollow }
func (e JoinEvent) Kind() EventKind     { return EventJoin }
func (e LeaveEvent) Kind() EventKind    { return EventLeave }
func (e PostbackEvent) Kind() EventKind { return EventPostback }
func (e BeaconEvent) Kind() EventKind   { return EventBeacon }

func (e MessageEvent) Base() EventBase  { return e.EventBase }
func (e FollowEvent) Base() EventBase   { return e.EventBase }
func (e UnfollowEvent) Base() EventBase { return e.EventBase }
func (e JoinEvent) Base() EventBase     { return e.EventBase }
func (e LeaveEvent) Base() EventBase    { return e.EventBase }
func (e PostbackEvent) Base() EventBase { return e.EventBase }
func (e BeaconEvent) Base() EventBase   { return e.EventBase }

func (MessageEvent) sealedEvent()  {}
func (FollowEvent) sealedEvent()   {}
func (UnfollowEvent) sealedEvent() {}
func (JoinEvent) sealedEvent()     {}
func (LeaveEvent) sealedEvent()    {}
func (PostbackEvent) sealedEvent() {}
func (BeaconEvent) sealedEvent()   {}
