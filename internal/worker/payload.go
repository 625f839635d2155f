package worker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mutware/mutctl/internal/mutators"
	"github.com/mutware/mutctl/internal/protocol/wire"
)

const argsVersion byte = 1

var ErrInvalidArgs = errors.New("worker: invalid args")

// Args is the initial configuration payload the coordinator streams to
// the worker after connect: the resolved mutator ids plus run scoping.
type Args struct {
	RunID          string
	TargetPatterns []string
	MutatorIDs     []string
	TestTimeoutMS  uint64
	Verbose        bool
}

var _ PayloadWriter = Args{}

// NewArgs builds the payload for an already-resolved mutator set.
func NewArgs(runID string, resolved []mutators.Mutator) Args {
	return Args{
		RunID:      runID,
		MutatorIDs: mutators.IDs(resolved),
	}
}

func (a Args) Validate() error {
	if strings.TrimSpace(a.RunID) == "" {
		return fmt.Errorf("%w: missing run_id", ErrInvalidArgs)
	}
	if len(a.MutatorIDs) == 0 {
		return fmt.Errorf("%w: no mutators resolved", ErrInvalidArgs)
	}
	return nil
}

func (a Args) WritePayload(w *wire.Writer) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := w.WriteByte(argsVersion); err != nil {
		return err
	}
	if err := w.WriteString(a.RunID); err != nil {
		return err
	}
	if err := w.WriteStrings(a.TargetPatterns); err != nil {
		return err
	}
	if err := w.WriteStrings(a.MutatorIDs); err != nil {
		return err
	}
	if err := w.WriteUint64(a.TestTimeoutMS); err != nil {
		return err
	}
	return w.WriteBool(a.Verbose)
}

// ReadArgs is the worker-side decode counterpart of WritePayload.
func ReadArgs(r *wire.Reader) (Args, error) {
	version, err := r.ReadByte()
	if err != nil {
		return Args{}, err
	}
	if version != argsVersion {
		return Args{}, fmt.Errorf("%w: unsupported args version %d", ErrInvalidArgs, version)
	}
	var a Args
	if a.RunID, err = r.ReadString(); err != nil {
		return Args{}, err
	}
	if a.TargetPatterns, err = r.ReadStrings(); err != nil {
		return Args{}, err
	}
	if a.MutatorIDs, err = r.ReadStrings(); err != nil {
		return Args{}, err
	}
	if a.TestTimeoutMS, err = r.ReadUint64(); err != nil {
		return Args{}, err
	}
	if a.Verbose, err = r.ReadBool(); err != nil {
		return Args{}, err
	}
	if err := a.Validate(); err != nil {
		return Args{}, err
	}
	return a, nil
}
