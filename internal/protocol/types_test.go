package protocol

import "testing"

func TestExitCodeFromCodeKnownValues(t *testing.T) {
	cases := map[uint32]ExitCode{
		0:  ExitOk,
		1:  ExitUnknownError,
		3:  ExitTimeout,
		42: ExitOutOfMemory,
	}
	for raw, want := range cases {
		if got := ExitCodeFromCode(raw); got != want {
			t.Fatalf("code %d: got %v want %v", raw, got, want)
		}
	}
}

func TestExitCodeFromCodeFoldsUnknown(t *testing.T) {
	for _, raw := range []uint32{2, 7, 999999, ^uint32(0)} {
		if got := ExitCodeFromCode(raw); got != ExitUnknownError {
			t.Fatalf("code %d: got %v want ExitUnknownError", raw, got)
		}
	}
}

func TestExitCodeString(t *testing.T) {
	if ExitOk.String() != "ok" {
		t.Fatalf("unexpected: %s", ExitOk.String())
	}
	if ExitCode(9).String() != "exit_code(9)" {
		t.Fatalf("unexpected: %s", ExitCode(9).String())
	}
}
