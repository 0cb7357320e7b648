package line

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the body keyed by the
// channel secret.
const SignatureHeader = "X-Line-Signature"

// VerifySignature returns ErrInvalidSignature when signature does not match
// body under secret.
func VerifySignature(secret, signature string, body []byte) error {
	if signature == "" || !webhook.ValidateSignature(secret, signature, body) {
		return ErrInvalidSignature
	}
	return nil
}
