package transcript

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"deliverypulse/internal/core/ports"
)

// contentTypeByExt hints the speech-to-text API about the payload
// format. Unlisted extensions fall back to audio/mpeg, which the API
// accepts for most containers.
var contentTypeByExt = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".webm": "audio/webm",
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
}

// Extractor turns stored upload files into raw text: audio and video
// go through the speech-to-text port, text files are decoded in place.
type Extractor struct {
	storage ports.ObjectStorage
	stt     ports.SpeechToText
}

func NewExtractor(storage ports.ObjectStorage, stt ports.SpeechToText) *Extractor {
	return &Extractor{storage: storage, stt: stt}
}

func (e *Extractor) Transcribe(ctx context.Context, path, filename string) (string, error) {
	data, err := e.storage.Read(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read source file: %w", err)
	}

	contentType, ok := contentTypeByExt[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		contentType = "audio/mpeg"
	}

	text, err := e.stt.Transcribe(ctx, data, filename, contentType)
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", filename, err)
	}
	return strings.TrimSpace(text), nil
}

func (e *Extractor) ReadText(ctx context.Context, path, filename string) (string, error) {
	data, err := e.storage.Read(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read source file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		text, err := extractPDFText(data)
		if err != nil {
			return "", fmt.Errorf("extract pdf text from %s: %w", filename, err)
		}
		return strings.TrimSpace(text), nil
	}

	text := string(data)
	if !utf8.ValidString(text) {
		// Drop undecodable bytes rather than failing the upload.
		text = strings.ToValidUTF8(text, "")
	}
	return strings.TrimSpace(text), nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var builder strings.Builder
	if _, err := io.Copy(&builder, plain); err != nil {
		return "", fmt.Errorf("copy pdf text: %w", err)
	}
	return builder.String(), nil
}
