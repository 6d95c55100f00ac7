package textframe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/charconv"
	"github.com/rawbytedev/charconv/internal/common"
	"github.com/rawbytedev/charconv/internal/report"
)

// Decoder validates frames and splits their payload. It is safe for
// concurrent use.
type Decoder struct {
	limit int64
	zr    *zstd.Decoder
	rep   report.Reporter
}

// NewDecoder builds a Decoder enforcing opts.MaxFrameSize.
func NewDecoder(opts Options) (*Decoder, error) {
	limit, err := maxFrameSize(opts.MaxFrameSize)
	if err != nil {
		return nil, err
	}
	zr, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(limit)))
	if err != nil {
		return nil, err
	}
	return &Decoder{limit: limit, zr: zr, rep: report.OrDiscard(opts.Reporter)}, nil
}

// Close releases the zstd decoder.
func (d *Decoder) Close() {
	d.zr.Close()
}

// open checks the preamble, length and CRC and returns the bytes between
// the length field and the CRC.
func (d *Decoder) open(frame []byte, want FrameType) ([]byte, error) {
	if int64(len(frame)) > d.limit {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFrameTooLarge, len(frame), d.limit)
	}
	if len(frame) < minFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedFrame, len(frame))
	}
	t, err := Peek(frame)
	if err != nil {
		return nil, err
	}
	if t != want {
		return nil, fmt.Errorf("%w: not a %s frame", ErrMalformedFrame, want)
	}
	if length := binary.LittleEndian.Uint32(frame[len(magic)+1:]); int(length) != len(frame) {
		return nil, fmt.Errorf("%w: length %d, have %d", ErrMalformedFrame, length, len(frame))
	}
	end := len(frame) - crcSize
	if crc32.ChecksumIEEE(frame[len(magic):end]) != binary.LittleEndian.Uint32(frame[end:]) {
		return nil, ErrCRCMismatch
	}
	return frame[headerSize:end], nil
}

// Decode verifies a data frame and returns one span per value. Spans point
// into frame unless the payload was compressed.
func (d *Decoder) Decode(frame []byte) ([][]byte, error) {
	spans, err := d.decode(frame)
	if err != nil {
		d.rep.Report(err, report.Fields{"frame_size": len(frame)})
		return nil, err
	}
	return spans, nil
}

func (d *Decoder) decode(frame []byte) ([][]byte, error) {
	body, err := d.open(frame, TypeData)
	if err != nil {
		return nil, err
	}
	flags := body[0]
	if flags&^FlagZstd != 0 {
		return nil, fmt.Errorf("%w: unknown flags %#x", ErrMalformedFrame, flags)
	}
	count, n := common.ReadVarUint(body[1:])
	if n == 0 {
		return nil, fmt.Errorf("%w: bad value count", ErrMalformedFrame)
	}
	payload := body[1+n:]
	if flags&FlagZstd != 0 {
		payload, err = d.zr.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
		}
	}
	return split(payload, count)
}

func split(payload []byte, count uint64) ([][]byte, error) {
	if count == 0 {
		if len(payload) != 0 {
			return nil, fmt.Errorf("%w: payload without values", ErrMalformedFrame)
		}
		return nil, nil
	}
	// every value but the last is followed by a separator
	if count-1 > uint64(len(payload)) {
		return nil, fmt.Errorf("%w: %d values in %d bytes", ErrMalformedFrame, count, len(payload))
	}
	spans := make([][]byte, 0, count)
	for uint64(len(spans)) < count-1 {
		i := bytes.IndexByte(payload, Separator)
		if i < 0 {
			return nil, fmt.Errorf("%w: have %d of %d values", ErrMalformedFrame, len(spans)+1, count)
		}
		spans = append(spans, payload[:i:i])
		payload = payload[i+1:]
	}
	if bytes.IndexByte(payload, Separator) >= 0 {
		return nil, fmt.Errorf("%w: more than %d values", ErrMalformedFrame, count)
	}
	return append(spans, payload), nil
}

// DecodeInto decodes a data frame and parses value i into dsts[i] with
// charconv.FromChars. Every value that fails is reported; the returned
// error joins them.
func (d *Decoder) DecodeInto(frame []byte, dsts ...any) error {
	spans, err := d.Decode(frame)
	if err != nil {
		return err
	}
	if len(spans) != len(dsts) {
		err := fmt.Errorf("%w: %d values, %d destinations", ErrCountMismatch, len(spans), len(dsts))
		d.rep.Report(err, nil)
		return err
	}
	var errs []error
	for i, span := range spans {
		if charconv.FromChars(span, dsts[i]) {
			continue
		}
		err := fmt.Errorf("value %d: %w: %q", i, ErrInvalidValue, span)
		d.rep.Report(err, report.Fields{"index": i, "value": string(span), "type": fmt.Sprintf("%T", dsts[i])})
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DecodeError verifies an error frame and returns its contents.
func (d *Decoder) DecodeError(frame []byte) (ErrorFrame, error) {
	body, err := d.open(frame, TypeError)
	if err != nil {
		d.rep.Report(err, report.Fields{"frame_size": len(frame)})
		return ErrorFrame{}, err
	}
	size, n := common.ReadVarUint(body[1:])
	if n == 0 || size != uint64(len(body)-1-n) {
		err := fmt.Errorf("%w: bad message length", ErrMalformedFrame)
		d.rep.Report(err, report.Fields{"frame_size": len(frame)})
		return ErrorFrame{}, err
	}
	return ErrorFrame{Code: body[0], Message: string(body[1+n:])}, nil
}
