package domain

import (
	"path/filepath"
	"strings"
)

type FileKind string

const (
	KindAudio   FileKind = "audio"
	KindVideo   FileKind = "video"
	KindText    FileKind = "text"
	KindUnknown FileKind = "unknown"
)

var audioExtensions = map[string]struct{}{
	".mp3": {}, ".wav": {}, ".m4a": {}, ".ogg": {}, ".flac": {}, ".webm": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".avi": {}, ".mov": {}, ".mkv": {}, ".webm": {}, ".flv": {},
}

var textExtensions = map[string]struct{}{
	".txt": {}, ".doc": {}, ".docx": {}, ".pdf": {},
}

// KindForFilename maps a filename to its file kind by extension. The
// audio set is consulted before the video set, so .webm classifies as
// audio even though both sets list it. Unmapped extensions classify as
// KindUnknown, never an error.
func KindForFilename(filename string) FileKind {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := audioExtensions[ext]; ok {
		return KindAudio
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	if _, ok := textExtensions[ext]; ok {
		return KindText
	}
	return KindUnknown
}
