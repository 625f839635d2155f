package coordinator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mutware/mutctl/internal/tools"
)

var ErrNoWorkerCommand = errors.New("coordinator: no worker command configured")

// addrPlaceholder is substituted with the session address in worker
// command arguments.
const addrPlaceholder = "{addr}"

// ExecLauncher spawns worker processes by executing a configured
// command. The session address replaces every {addr} argument; when no
// placeholder is present the address is appended as the last argument.
type ExecLauncher struct {
	Command []string
	Runner  tools.CommandRunner
}

var _ Launcher = (*ExecLauncher)(nil)

func NewExecLauncher(command []string) (*ExecLauncher, error) {
	cleaned := make([]string, 0, len(command))
	for _, arg := range command {
		if strings.TrimSpace(arg) == "" {
			continue
		}
		cleaned = append(cleaned, arg)
	}
	if len(cleaned) == 0 {
		return nil, ErrNoWorkerCommand
	}
	return &ExecLauncher{Command: cleaned, Runner: tools.ExecRunner{}}, nil
}

func (l *ExecLauncher) Launch(ctx context.Context, addr net.Addr) error {
	name := l.Command[0]
	args := make([]string, 0, len(l.Command))
	substituted := false
	for _, arg := range l.Command[1:] {
		if strings.Contains(arg, addrPlaceholder) {
			arg = strings.ReplaceAll(arg, addrPlaceholder, addr.String())
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, addr.String())
	}

	stdout, stderr, exitCode, err := l.Runner.Run(ctx, name, args...)
	if err != nil {
		return fmt.Errorf(
			"coordinator: worker command failed cmd=%q exit=%d stdout=%q stderr=%q: %w",
			name,
			exitCode,
			strings.TrimSpace(string(stdout)),
			strings.TrimSpace(string(stderr)),
			err,
		)
	}
	log.Debug().
		Str("cmd", name).
		Str("addr", addr.String()).
		Msg("worker process exited")
	return nil
}
