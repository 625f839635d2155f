package wire

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteByte(64); err != nil {
		t.Fatalf("write byte: %v", err)
	}
	if err := w.WriteUint32(42); err != nil {
		t.Fatalf("write u32: %v", err)
	}
	if err := w.WriteUint64(1 << 40); err != nil {
		t.Fatalf("write u64: %v", err)
	}
	if err := w.WriteBool(true); err != nil {
		t.Fatalf("write bool: %v", err)
	}
	if err := w.WriteString("MATH"); err != nil {
		t.Fatalf("write string: %v", err)
	}
	if err := w.WriteStrings([]string{"ABS", "ROR"}); err != nil {
		t.Fatalf("write strings: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	r := NewReader(&buf)
	if b, err := r.ReadByte(); err != nil || b != 64 {
		t.Fatalf("read byte: b=%d err=%v", b, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 42 {
		t.Fatalf("read u32: v=%d err=%v", v, err)
	}
	if v, err := r.ReadUint64(); err != nil || v != 1<<40 {
		t.Fatalf("read u64: v=%d err=%v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || !v {
		t.Fatalf("read bool: v=%v err=%v", v, err)
	}
	if s, err := r.ReadString(); err != nil || s != "MATH" {
		t.Fatalf("read string: s=%q err=%v", s, err)
	}
	list, err := r.ReadStrings()
	if err != nil || len(list) != 2 || list[0] != "ABS" || list[1] != "ROR" {
		t.Fatalf("read strings: list=%v err=%v", list, err)
	}
}

func TestWriterBuffersUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteUint32(7); err != nil {
		t.Fatalf("write u32: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("bytes written before flush: %d", buf.Len())
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if buf.Len() != 4 {
		t.Fatalf("unexpected flushed length: %d", buf.Len())
	}
}

func TestReaderChunkLimit(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteString("oversized"); err != nil {
		t.Fatalf("write string: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	r := NewReaderWithLimits(&buf, Limits{MaxChunkBytes: 4})
	if _, err := r.ReadString(); !errors.Is(err, ErrChunkTooLarge) {
		t.Fatalf("expected ErrChunkTooLarge, got %v", err)
	}
}

func TestReaderShortStream(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0, 0}))
	if _, err := r.ReadUint32(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
}

func TestReaderInvalidBool(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{7}))
	if _, err := r.ReadBool(); !errors.Is(err, ErrInvalidBool) {
		t.Fatalf("expected ErrInvalidBool, got %v", err)
	}
}
