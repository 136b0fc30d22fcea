package mimetypes

import (
	"mime"
	"strings"
)

type MIME string

const (
	Unknown     MIME = "unknown"
	OctetStream MIME = "application/octet-stream"
	TextPlain   MIME = "text/plain"

	VideoMP4       MIME = "video/mp4"
	VideoAVI       MIME = "video/x-msvideo"
	VideoMatroska  MIME = "video/x-matroska"
	VideoQuickTime MIME = "video/quicktime"
	VideoWMV       MIME = "video/x-ms-wmv"
	VideoFLV       MIME = "video/x-flv"
	VideoWebM      MIME = "video/webm"
)

var byExtension = map[string]MIME{
	"mp4":  VideoMP4,
	"avi":  VideoAVI,
	"mkv":  VideoMatroska,
	"mov":  VideoQuickTime,
	"wmv":  VideoWMV,
	"flv":  VideoFLV,
	"webm": VideoWebM,
}

// ForExtension maps a lower-case extension without dot, OctetStream when unknown.
func ForExtension(ext string) MIME {
	if m, ok := byExtension[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return m
	}
	return OctetStream
}

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// IsVideo true for any video/* media type.
func IsVideo(detected string) bool {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "video/")
}
