package worker

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mutware/mutctl/internal/protocol"
	"github.com/mutware/mutctl/internal/protocol/wire"
)

// PayloadWriter writes the initial configuration payload to the worker,
// exactly once, immediately after connect and before any read.
type PayloadWriter interface {
	WritePayload(w *wire.Writer) error
}

// Dispatcher interprets one tagged result record. It must consume
// exactly the bytes belonging to the record before returning.
type Dispatcher interface {
	Dispatch(tag byte, r *wire.Reader) error
}

// IOError is a socket accept/read/write/close failure. It is fatal to
// the session and never retried at this layer.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("worker: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Session drives one worker connection end to end: accept, send the
// initial payload, consume tagged records until the DONE sentinel,
// decode the exit code trailer, release both sockets.
type Session struct {
	ln       net.Listener
	payload  PayloadWriter
	dispatch Dispatcher

	mu   sync.Mutex
	conn net.Conn
}

// NewSession takes ownership of ln; the listener serves exactly one
// client and is closed when the session ends, on every path.
func NewSession(ln net.Listener, payload PayloadWriter, dispatch Dispatcher) *Session {
	return &Session{ln: ln, payload: payload, dispatch: dispatch}
}

// Addr returns the listening address the worker must dial.
func (s *Session) Addr() net.Addr {
	return s.ln.Addr()
}

// Run blocks until the worker finishes or the connection fails. On
// failure no partial exit code is reported; the caller receives the
// error. Close failures surface as session failures even after an
// otherwise clean run, folded together with any earlier error.
func (s *Session) Run() (code protocol.ExitCode, err error) {
	code = protocol.ExitUnknownError

	conn, acceptErr := s.ln.Accept()
	if acceptErr != nil {
		err = &IOError{Op: "accept", Err: acceptErr}
		if cerr := s.ln.Close(); cerr != nil {
			err = errors.Join(err, &IOError{Op: "close listener", Err: cerr})
		}
		return code, err
	}
	s.setConn(conn)
	log.Debug().
		Str("remote", conn.RemoteAddr().String()).
		Msg("worker connected")

	defer func() {
		if cerr := conn.Close(); cerr != nil {
			err = errors.Join(err, &IOError{Op: "close connection", Err: cerr})
		}
		if cerr := s.ln.Close(); cerr != nil {
			err = errors.Join(err, &IOError{Op: "close listener", Err: cerr})
		}
	}()

	w := wire.NewWriter(conn)
	if perr := s.payload.WritePayload(w); perr != nil {
		return code, &IOError{Op: "write initial payload", Err: perr}
	}
	if ferr := w.Flush(); ferr != nil {
		return code, &IOError{Op: "flush initial payload", Err: ferr}
	}

	r := wire.NewReader(conn)
	for {
		tag, rerr := r.ReadByte()
		if rerr != nil {
			return code, &IOError{Op: "read record tag", Err: rerr}
		}
		if tag == protocol.TagDone {
			break
		}
		if derr := s.dispatch.Dispatch(tag, r); derr != nil {
			return code, fmt.Errorf("worker: dispatch tag 0x%02x: %w", tag, derr)
		}
	}

	raw, rerr := r.ReadUint32()
	if rerr != nil {
		return code, &IOError{Op: "read exit code", Err: rerr}
	}
	code = protocol.ExitCodeFromCode(raw)
	log.Debug().
		Stringer("exit_code", code).
		Msg("worker session complete")
	return code, nil
}

// Abort forcibly closes the session sockets, unblocking any pending
// accept or read inside Run. The blocked Run call then returns a
// failure. Abort is the external cancellation hook; the session itself
// imposes no timeouts.
func (s *Session) Abort() {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
	_ = s.ln.Close()
}

func (s *Session) setConn(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn = conn
}
