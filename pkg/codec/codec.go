// Package codec textual and byte stream framing of captured frames
package codec

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/forest33/shark/business/entity"
)

const (
	FlagSequence = 0x7E
	CommentChar  = '#'
)

// ParseHex decodes one frame written as hex digits. Whitespace, ',', ':' and '-'
// separators, 0x prefixes and trailing # comments are ignored.
func ParseHex(s string) ([]byte, error) {
	if i := strings.IndexByte(s, CommentChar); i >= 0 {
		s = s[:i]
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ':' || r == '-'
	})

	var sb strings.Builder
	for _, f := range fields {
		if len(f) > 1 && f[0] == '0' && (f[1] == 'x' || f[1] == 'X') {
			f = f[2:]
		}
		sb.WriteString(f)
	}

	data, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, errors.Wrap(entity.ErrInvalidHex, err.Error())
	}

	return data, nil
}

// IsText reports whether data looks like hex text rather than binary frames
func IsText(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 || (b < 0x20 && b != '\n' && b != '\r' && b != '\t') {
			return false
		}
	}
	return len(data) != 0
}

// ScanFrames is a bufio.SplitFunc returning 0x7E delimited frames including both
// flags. A flag closing one frame may open the next one. Bytes outside frames are dropped.
func ScanFrames(data []byte, atEOF bool) (int, []byte, error) {
	start := bytes.IndexByte(data, FlagSequence)
	if start < 0 {
		return len(data), nil, nil
	}

	body := start
	for body < len(data) && data[body] == FlagSequence {
		body++
	}
	if body == len(data) {
		if atEOF {
			return len(data), nil, nil
		}
		// keep the last flag, it may open the next frame
		return body - 1, nil, nil
	}

	end := bytes.IndexByte(data[body:], FlagSequence)
	if end < 0 {
		if atEOF {
			return len(data), nil, nil
		}
		return start, nil, nil
	}
	end += body

	return end, data[body-1 : end+1], nil
}

// SplitFrames splits an HDLC byte stream into frames
func SplitFrames(data []byte, maxFrameSize int) ([][]byte, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, min(maxFrameSize+2, 4096)), maxFrameSize+2)
	sc.Split(ScanFrames)

	frames := make([][]byte, 0, 16)
	for sc.Scan() {
		frames = append(frames, bytes.Clone(sc.Bytes()))
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, entity.ErrFrameTooLarge
		}
		return nil, err
	}

	return frames, nil
}
