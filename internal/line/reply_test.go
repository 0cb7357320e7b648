package line

import (
	"strings"
	"testing"
)

func TestValidateReplies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msgs    []ReplyMessage
		wantErr bool
	}{
		{name: "single text", msgs: TextReplies("hello")},
		{
			name: "every kind",
			msgs: []ReplyMessage{
				TextReply{Text: "hi"},
				ImageReply{OriginalContentURL: "https://x/a.jpg", PreviewImageURL: "https://x/a.jpg"},
				VideoReply{OriginalContentURL: "https://x/a.mp4", PreviewImageURL: "https://x/p.png"},
				AudioReply{OriginalContentURL: "https://x/a.m4a", Duration: 1200},
				LocationReply{Title: "t", Address: "a", Latitude: 35.6, Longitude: 139.7},
			},
		},
		{name: "sticker", msgs: []ReplyMessage{StickerReply{PackageID: "1", StickerID: "2"}}},
		{name: "empty", msgs: nil, wantErr: true},
		{name: "too many", msgs: TextReplies("1", "2", "3", "4", "5", "6"), wantErr: true},
		{name: "empty text", msgs: TextReplies(""), wantErr: true},
		{name: "text too long", msgs: TextReplies(strings.Repeat("a", 5001)), wantErr: true},
		{name: "image without preview", msgs: []ReplyMessage{ImageReply{OriginalContentURL: "https://x/a.jpg"}}, wantErr: true},
		{name: "video bad url", msgs: []ReplyMessage{VideoReply{OriginalContentURL: "not a url", PreviewImageURL: "https://x/p.png"}}, wantErr: true},
		{name: "audio without duration", msgs: []ReplyMessage{AudioReply{OriginalContentURL: "https://x/a.m4a"}}, wantErr: true},
		{name: "location out of range", msgs: []ReplyMessage{LocationReply{Title: "t", Address: "a", Latitude: 91}}, wantErr: true},
		{name: "sticker without id", msgs: []ReplyMessage{StickerReply{PackageID: "1"}}, wantErr: true},
		{name: "nil entry", msgs: []ReplyMessage{nil}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateReplies(tt.msgs)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTextReplies(t *testing.T) {
	t.Parallel()

	got := TextReplies("a", "b")
	if len(got) != 2 {
		t.Fatalf("expected 2 replies, got %d", len(got))
	}
	if got[1] != (TextReply{Text: "b"}) {
		t.Fatalf("unexpected reply: %#v", got[1])
	}
}
