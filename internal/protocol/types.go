package protocol

import "fmt"

// Result stream tag bytes. Every worker record starts with one tag;
// TagDone terminates the stream and is followed only by the exit
// code trailer.
const (
	TagDescribe byte = 1
	TagReport   byte = 2
	TagProgress byte = 3
	TagDone     byte = 64
)

// ExitCode summarizes how the worker process ended. It is decoded from
// the 4-byte big-endian trailer sent after TagDone.
type ExitCode uint32

const (
	ExitOk           ExitCode = 0
	ExitUnknownError ExitCode = 1
	ExitTimeout      ExitCode = 3
	ExitOutOfMemory  ExitCode = 42
)

// ExitCodeFromCode decodes a trailer integer. Values outside the known
// catalog fold to ExitUnknownError so a newer worker never breaks an
// older coordinator.
func ExitCodeFromCode(v uint32) ExitCode {
	switch ExitCode(v) {
	case ExitOk, ExitUnknownError, ExitTimeout, ExitOutOfMemory:
		return ExitCode(v)
	default:
		return ExitUnknownError
	}
}

func (c ExitCode) String() string {
	switch c {
	case ExitOk:
		return "ok"
	case ExitTimeout:
		return "timeout"
	case ExitOutOfMemory:
		return "out_of_memory"
	case ExitUnknownError:
		return "unknown_error"
	default:
		return fmt.Sprintf("exit_code(%d)", uint32(c))
	}
}
