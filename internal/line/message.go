package line

// MessageKind is the message type discriminator, shared by inbound messages
// and replies.
type MessageKind string

const (
	MessageText     MessageKind = "text"
	MessageImage    MessageKind = "image"
	MessageVideo    MessageKind = "video"
	MessageAudio    MessageKind = "audio"
	MessageLocation MessageKind = "location"
	MessageSticker  MessageKind = "sticker"
)

// ProviderKind tells where the binary content of a media message lives.
type ProviderKind string

const (
	// ProviderLine means the content is stored by the platform and must be
	// fetched by message id.
	ProviderLine ProviderKind = "line"
	// ProviderExternal means the sender supplied public URLs.
	ProviderExternal ProviderKind = "external"
)

// ContentProvider describes the origin of media content.
type ContentProvider struct {
	Type               ProviderKind `json:"type"`
	OriginalContentURL string       `json:"originalContentUrl,omitempty"`
	PreviewImageURL    string       `json:"previewImageUrl,omitempty"`
}

// Message is the payload of a MessageEvent. The set of implementations is
// closed: TextMessage, ImageMessage, VideoMessage, AudioMessage,
// LocationMessage and StickerMessage.
type Message interface {
	Kind() MessageKind
	MessageID() string
	sealedMessage()
}

type TextMessage struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ImageMessage struct {
	ID              string          `json:"id"`
	ContentProvider ContentProvider `json:"contentProvider"`
}

type VideoMessage struct {
	ID              string          `json:"id"`
	Duration        int64           `json:"duration,omitempty"`
	ContentProvider ContentProvider `json:"contentProvider"`
}

type AudioMessage struct {
	ID              string          `json:"id"`
	Duration        int64           `json:"duration,omitempty"`
	ContentProvider ContentProvider `json:"contentProvider"`
}

type LocationMessage struct {
	ID        string  `json:"id"`
	Title     string  `json:"title,omitempty"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type StickerMessage struct {
	ID        string `json:"id"`
	PackageID string `json:"packageId"`
	StickerID string `json:"stickerId"`
}

func (TextMessage) Kind() MessageKind     { return MessageText }
func (ImageMessage) Kind() MessageKind    { return MessageImage }
func (VideoMessage) Kind() MessageKind    { return MessageVideo }
func (AudioMessage) Kind() MessageKind    { return MessageAudio }
func (LocationMessage) Kind() MessageKind { return MessageLocation }
func (StickerMessage) Kind() MessageKind  { return MessageSticker }

func (m TextMessage) MessageID() string     { return m.ID }
func (m ImageMessage) MessageID() string    { return m.ID }
func (m VideoMessage) MessageID() string    { return m.ID }
func (m AudioMessage) MessageID() string    { return m.ID }
func (m LocationMessage) MessageID() string { return m.ID }
func (m StickerMessage) MessageID() string  { return m.ID }

func (TextMessage) sealedMessage()     {}
func (ImageMessage) sealedMessage()    {}
func (VideoMessage) sealedMessage()    {}
func (AudioMessage) sealedMessage()    {}
func (LocationMessage) sealedMessage() {}
func (StickerMessage) sealedMessage()  {}
