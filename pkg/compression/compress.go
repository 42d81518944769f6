// Package compression decompression of captured data by file type
package compression

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/rasky/go-lzo"

	"github.com/forest33/shark/business/entity"
)

const (
	DefaultMaxSize = 64 << 20
	lzoRatioHint   = 4
)

// Type compression algorithm
type Type uint8

const (
	TypeNone Type = iota
	TypeZSTD
	TypeLZ4
	TypeLZO
)

var extensions = map[string]Type{
	".zst":  TypeZSTD,
	".zstd": TypeZSTD,
	".lz4":  TypeLZ4,
	".lzo":  TypeLZO,
}

func (t Type) String() string {
	switch t {
	case TypeZSTD:
		return "zstd"
	case TypeLZ4:
		return "lz4"
	case TypeLZO:
		return "lzo"
	}
	return "none"
}

// TypeFromPath detects compression by file extension
func TypeFromPath(path string) Type {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

type Compressor struct {
	cfg         *Config
	zstdDecoder *zstd.Decoder
}

type Config struct {
	// MaxSize limits decompressed output
	MaxSize int
}

func New(cfg *Config) *Compressor {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}

	zstdDecoder, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(cfg.MaxSize)))

	return &Compressor{
		cfg:         cfg,
		zstdDecoder: zstdDecoder,
	}
}

// Decompress returns in unpacked with the algorithm t
func (c *Compressor) Decompress(t Type, in []byte) ([]byte, error) {
	var (
		out []byte
		err error
	)

	switch t {
	case TypeZSTD:
		out, err = c.DecompressZSTD(in)
	case TypeLZ4:
		out, err = c.DecompressLZ4(in)
	case TypeLZO:
		out, err = c.DecompressLZO(in)
	default:
		out = in
	}
	if err != nil {
		return nil, err
	}
	if len(out) > c.cfg.MaxSize {
		return nil, entity.ErrFrameTooLarge
	}

	return out, nil
}

// DecompressLZ4 unpacks the LZ4 frame format written by the lz4 tool
func (c *Compressor) DecompressLZ4(in []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(in))
	return io.ReadAll(io.LimitReader(r, int64(c.cfg.MaxSize)+1))
}

// DecompressLZO unpacks an LZO1X stream, the output buffer grows from a small size hint
func (c *Compressor) DecompressLZO(in []byte) ([]byte, error) {
	hint := len(in) * lzoRatioHint
	if hint > c.cfg.MaxSize {
		hint = c.cfg.MaxSize
	}
	out, err := lzo.Decompress1X(bytes.NewReader(in), len(in), hint)
	if err != nil {
		return nil, err
	}
	if len(out) > c.cfg.MaxSize {
		return nil, entity.ErrFrameTooLarge
	}
	return out, nil
}

func (c *Compressor) DecompressZSTD(in []byte) ([]byte, error) {
	return c.zstdDecoder.DecodeAll(in, nil)
}
