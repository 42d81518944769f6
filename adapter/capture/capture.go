// Package capture loads captured frames from files and streams
package capture

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/codec"
	"github.com/forest33/shark/pkg/compression"
	"github.com/forest33/shark/pkg/logger"
)

// Reader splits capture data into frames
type Reader struct {
	cfg *entity.CaptureConfig
	log *logger.Logger
	cmp *compression.Compressor
}

// New creates Reader
func New(log *logger.Logger, cfg *entity.CaptureConfig) *Reader {
	return &Reader{
		cfg: cfg,
		log: log.Layer("capture"),
		cmp: compression.New(&compression.Config{MaxSize: cfg.MaxFileSize}),
	}
}

// ReadFile loads frames from the file, decompressing it by extension
func (r *Reader) ReadFile(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := r.readAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	t := compression.TypeFromPath(path)
	if data, err = r.cmp.Decompress(t, data); err != nil {
		return nil, errors.Wrapf(err, "failed to decompress %s", path)
	}

	r.log.Debug().
		Str("path", path).
		Str("compression", t.String()).
		Int("size", len(data)).
		Msg("capture loaded")

	return r.Frames(data)
}

// Read loads frames from the stream
func (r *Reader) Read(in io.Reader) ([][]byte, error) {
	data, err := r.readAll(in)
	if err != nil {
		return nil, err
	}
	return r.Frames(data)
}

// Frames splits data into frames according to the configured capture format
func (r *Reader) Frames(data []byte) ([][]byte, error) {
	format := r.cfg.Format
	if format == entity.CaptureFormatAuto || format == "" {
		format = Detect(data)
	}

	var (
		frames [][]byte
		err    error
	)
	switch format {
	case entity.CaptureFormatHex:
		frames, err = hexFrames(data)
	case entity.CaptureFormatHDLC:
		frames, err = codec.SplitFrames(data, r.cfg.MaxFrameSize)
	case entity.CaptureFormatRaw:
		if len(data) != 0 {
			frames = [][]byte{data}
		}
	default:
		return nil, errors.Wrap(entity.ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	for i, f := range frames {
		if len(f) > r.cfg.MaxFrameSize {
			return nil, errors.Wrapf(entity.ErrFrameTooLarge, "frame %d: %d bytes", i, len(f))
		}
	}

	return frames, nil
}

// Detect guesses capture format of data
func Detect(data []byte) string {
	switch {
	case codec.IsText(data):
		return entity.CaptureFormatHex
	case len(data) != 0 && data[0] == codec.FlagSequence:
		return entity.CaptureFormatHDLC
	}
	return entity.CaptureFormatRaw
}

func (r *Reader) readAll(in io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(in, int64(r.cfg.MaxFileSize)+1))
	if err != nil {
		return nil, err
	}
	if len(data) > r.cfg.MaxFileSize {
		return nil, entity.ErrFrameTooLarge
	}
	return data, nil
}

// hexFrames parses one frame per line
func hexFrames(data []byte) ([][]byte, error) {
	var (
		frames = make([][]byte, 0, 16)
		sc     = bufio.NewScanner(bytes.NewReader(data))
		line   int
	)
	sc.Buffer(make([]byte, 0, 4096), len(data)+1)

	for sc.Scan() {
		line++
		frame, err := codec.ParseHex(sc.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if len(frame) != 0 {
			frames = append(frames, frame)
		}
	}

	return frames, sc.Err()
}
