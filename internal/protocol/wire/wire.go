package wire

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrChunkTooLarge = errors.New("wire: length-prefixed chunk too large")
	ErrInvalidBool   = errors.New("wire: invalid bool byte")
)

// Limits constrains decode memory use for length-prefixed values.
type Limits struct {
	MaxChunkBytes uint32
}

func DefaultLimits() Limits {
	return Limits{MaxChunkBytes: 8 * 1024 * 1024}
}

// Writer encodes typed fields onto an output stream. All integers are
// big-endian; strings and byte slices carry a u32 length prefix.
// Values are buffered until Flush.
type Writer struct {
	bw *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

func (w *Writer) WriteByte(b byte) error {
	return w.bw.WriteByte(b)
}

func (w *Writer) WriteBool(v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	return w.bw.WriteByte(b)
}

func (w *Writer) WriteUint32(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.bw.Write(buf[:])
	return err
}

func (w *Writer) WriteUint64(v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.bw.Write(buf[:])
	return err
}

func (w *Writer) WriteBytes(b []byte) error {
	if err := w.WriteUint32(uint32(len(b))); err != nil {
		return err
	}
	_, err := w.bw.Write(b)
	return err
}

func (w *Writer) WriteString(s string) error {
	return w.WriteBytes([]byte(s))
}

func (w *Writer) WriteStrings(list []string) error {
	if err := w.WriteUint32(uint32(len(list))); err != nil {
		return err
	}
	for _, s := range list {
		if err := w.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

// Flush pushes buffered bytes to the underlying stream.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Reader decodes typed fields from an input stream. Reads block until
// bytes arrive or the peer closes; short streams surface the underlying
// io error.
type Reader struct {
	br     *bufio.Reader
	limits Limits
}

func NewReader(r io.Reader) *Reader {
	return NewReaderWithLimits(r, DefaultLimits())
}

func NewReaderWithLimits(r io.Reader, limits Limits) *Reader {
	return &Reader{br: bufio.NewReader(r), limits: limits}
}

func (r *Reader) ReadByte() (byte, error) {
	return r.br.ReadByte()
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidBool
	}
}

func (r *Reader) ReadUint32() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r.br, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r.br, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if n > r.limits.MaxChunkBytes {
		return nil, ErrChunkTooLarge
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) ReadStrings() ([]string, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := uint32(0); i < n; i++ {
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
