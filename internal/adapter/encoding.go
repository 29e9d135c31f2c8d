package adapter

import (
	"encoding/base64"
	"strings"
)

// Base64 decodes the payload of inline data URIs
//
//go:generate mockgen -source=encoding.go -destination=../mocks/encoding.go -package=mocks -mock_names=Base64=MockBase64
type Base64 interface {
	Encode(data []byte) string
	Decode(data string) ([]byte, error)
}

type RealBase64 struct{}

func NewBase64() Base64 {
	return &RealBase64{}
}

func (b *RealBase64) Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode accepts standard and URL-safe alphabets, padded or not.
// Whitespace inside the payload is ignored.
func (b *RealBase64) Decode(data string) ([]byte, error) {
	data = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, data)

	if strings.ContainsAny(data, "-_") {
		if strings.HasSuffix(data, "=") {
			return base64.URLEncoding.DecodeString(data)
		}
		return base64.RawURLEncoding.DecodeString(data)
	}
	if len(data)%4 != 0 {
		return base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
	}
	return base64.StdEncoding.DecodeString(data)
}
