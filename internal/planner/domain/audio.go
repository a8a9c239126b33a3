package domain

import (
	"fmt"
	"strings"
)

// AudioClip is a self-describing audio payload as supplied by the capture
// collaborator: a MIME type and base64-encoded data.
type AudioClip struct {
	MIMEType   string
	Base64Data string
}

// ParseAudioDataURI splits a "data:<mimetype>;base64,<data>" URI into its
// MIME type and payload. The recorder always produces this shape.
func ParseAudioDataURI(uri string) (AudioClip, error) {
	if !strings.HasPrefix(uri, "data:") {
		return AudioClip{}, fmt.Errorf("audio payload is not a data URI")
	}
	rest := uri[len("data:"):]

	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return AudioClip{}, fmt.Errorf("audio data URI is not base64-encoded")
	}

	clip := AudioClip{
		MIMEType:   rest[:sep],
		Base64Data: rest[sep+len(";base64,"):],
	}
	if clip.MIMEType == "" {
		return AudioClip{}, fmt.Errorf("audio data URI has no MIME type")
	}
	if clip.Base64Data == "" {
		return AudioClip{}, fmt.Errorf("audio data URI has no payload")
	}
	return clip, nil
}
