package textframe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/charconv"
	"github.com/rawbytedev/charconv/internal/common"
	"github.com/rawbytedev/charconv/internal/report"
)

// Options configure both ends of a stream of frames.
type Options struct {
	// MaxFrameSize bounds a whole frame, in go-units notation such as
	// "64KiB". Empty means DefaultMaxFrameSize.
	MaxFrameSize string
	// Compress enables zstd payloads on the encoder. Decoders accept
	// either.
	Compress bool
	Reporter report.Reporter
}

// Encoder builds frames. It reuses an internal text buffer and is not safe
// for concurrent use; returned frames are never reused.
type Encoder struct {
	limit int64
	zw    *zstd.Encoder
	rep   report.Reporter
	text  []byte
}

// NewEncoder builds an Encoder with the given compression options.
func NewEncoder(opts Options) (*Encoder, error) {
	limit, err := maxFrameSize(opts.MaxFrameSize)
	if err != nil {
		return nil, err
	}
	e := &Encoder{limit: limit, rep: report.OrDiscard(opts.Reporter)}
	if opts.Compress {
		e.zw, err = zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Close releases the compressor.
func (e *Encoder) Close() error {
	if e.zw == nil {
		return nil
	}
	return e.zw.Close()
}

// Encode serializes values into a data frame. Values may be any number,
// bool, string or byte slice; text values must not contain Separator.
func (e *Encoder) Encode(values ...any) ([]byte, error) {
	text := e.text[:0]
	for i, v := range values {
		if !encodable(v) {
			return nil, e.fail(fmt.Errorf("value %d: %w: %T", i, charconv.ErrUnsupportedType, v), i)
		}
		if i > 0 {
			text = append(text, Separator)
		}
		start := len(text)
		text = charconv.AppendChars(text, v)
		if bytes.IndexByte(text[start:], Separator) >= 0 {
			e.text = text
			return nil, e.fail(fmt.Errorf("value %d: %w", i, ErrSeparatorInValue), i)
		}
	}
	e.text = text

	var flags byte
	payload := text
	if e.zw != nil && len(text) > 0 {
		payload = e.zw.EncodeAll(text, nil)
		flags |= FlagZstd
	}

	out := make([]byte, 0, headerSize+1+binary.MaxVarintLen64+len(payload)+crcSize)
	out = writePreamble(out, TypeData)
	out = binary.LittleEndian.AppendUint32(out, 0) // length placeholder
	out = append(out, flags)
	out = common.WriteVarUintTo(out, uint64(len(values)))
	out = append(out, payload...)
	return e.seal(out)
}

// EncodeError builds an error frame.
func (e *Encoder) EncodeError(ef ErrorFrame) ([]byte, error) {
	out := make([]byte, 0, headerSize+1+binary.MaxVarintLen64+len(ef.Message)+crcSize)
	out = writePreamble(out, TypeError)
	out = binary.LittleEndian.AppendUint32(out, 0)
	out = append(out, ef.Code)
	out = common.WriteVarUintTo(out, uint64(len(ef.Message)))
	out = append(out, ef.Message...)
	return e.seal(out)
}

// seal fills in the length and appends the CRC.
func (e *Encoder) seal(out []byte) ([]byte, error) {
	total := len(out) + crcSize
	if int64(total) > e.limit {
		err := fmt.Errorf("%w: %d bytes, limit %d", ErrFrameTooLarge, total, e.limit)
		e.rep.Report(err, report.Fields{"size": total, "limit": e.limit})
		return nil, err
	}
	binary.LittleEndian.PutUint32(out[len(magic)+1:], uint32(total))
	crc := crc32.ChecksumIEEE(out[len(magic):])
	return binary.LittleEndian.AppendUint32(out, crc), nil
}

func (e *Encoder) fail(err error, index int) error {
	e.rep.Report(err, report.Fields{"index": index})
	return err
}
