package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrUnsupportedType = errors.New("unsupported file type")

var (
	ImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	MediaTypes = append(append([]string{}, ImageTypes...), "video/mp4", "video/webm")
)

// sniffLen is how much of the body is buffered for detection.
const sniffLen = 3072

// DetectContentType sniffs the body and rejects types outside allowed.
// The returned reader replays the sniffed bytes followed by the rest of body.
func DetectContentType(body io.Reader, allowed []string) (*mimetype.MIME, io.Reader, error) {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(body, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("failed to read upload: %w", err)
	}
	header = header[:n]

	detected := mimetype.Detect(header)
	for _, contentType := range allowed {
		if detected.Is(contentType) {
			return detected, io.MultiReader(bytes.NewReader(header), body), nil
		}
	}

	return nil, nil, fmt.Errorf("%w: %s (allowed: %s)", ErrUnsupportedType, detected.String(), strings.Join(allowed, ", "))
}

// Slugify lowercases s, strips accents, drops anything that is not a letter,
// digit, '-' or '_', and joins words with '-'.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			b.WriteRune(r)
			lastDash = false
		case unicode.IsSpace(r) || r == '-':
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
