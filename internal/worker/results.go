package worker

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mutware/mutctl/internal/protocol"
	"github.com/mutware/mutctl/internal/protocol/wire"
)

var ErrUnknownTag = errors.New("worker: unknown result tag")

// DetectionStatus is the worker-reported outcome for one mutation.
type DetectionStatus uint8

const (
	StatusKilled   DetectionStatus = 1
	StatusSurvived DetectionStatus = 2
	StatusTimedOut DetectionStatus = 3
	StatusRunError DetectionStatus = 4
)

func (s DetectionStatus) String() string {
	switch s {
	case StatusKilled:
		return "killed"
	case StatusSurvived:
		return "survived"
	case StatusTimedOut:
		return "timed_out"
	case StatusRunError:
		return "run_error"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Description announces the mutation the worker is about to exercise.
type Description struct {
	Index   uint32
	Mutator string
	Target  string
}

// Report carries the detection outcome for one described mutation.
type Report struct {
	Index       uint32
	Status      DetectionStatus
	KillingTest string
}

// Progress is a mid-run heartbeat record.
type Progress struct {
	Index    uint32
	TestsRun uint32
}

// ResultCollector is the default Dispatcher: it decodes the three
// record kinds and keeps them in memory, keyed by mutation index.
// Safe for concurrent reads while a session is running.
type ResultCollector struct {
	mu        sync.RWMutex
	described map[uint32]Description
	reports   map[uint32]Report
	progress  Progress
	records   uint64
}

var _ Dispatcher = (*ResultCollector)(nil)

func NewResultCollector() *ResultCollector {
	return &ResultCollector{
		described: make(map[uint32]Description),
		reports:   make(map[uint32]Report),
	}
}

func (c *ResultCollector) Dispatch(tag byte, r *wire.Reader) error {
	switch tag {
	case protocol.TagDescribe:
		d, err := ReadDescription(r)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.described[d.Index] = d
		c.records++
		c.mu.Unlock()
		log.Debug().
			Uint32("index", d.Index).
			Str("mutator", d.Mutator).
			Str("target", d.Target).
			Msg("mutation described")
		return nil
	case protocol.TagReport:
		rep, err := ReadReport(r)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.reports[rep.Index] = rep
		c.records++
		c.mu.Unlock()
		log.Debug().
			Uint32("index", rep.Index).
			Stringer("status", rep.Status).
			Msg("mutation reported")
		return nil
	case protocol.TagProgress:
		p, err := ReadProgress(r)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.progress = p
		c.records++
		c.mu.Unlock()
		return nil
	default:
		return fmt.Errorf("%w: 0x%02x", ErrUnknownTag, tag)
	}
}

// Reports lists received outcomes ordered by mutation index.
func (c *ResultCollector) Reports() []Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Report, 0, len(c.reports))
	for _, rep := range c.reports {
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})
	return out
}

// Description returns the announced mutation for an index, if seen.
func (c *ResultCollector) Description(index uint32) (Description, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.described[index]
	return d, ok
}

// Progress returns the latest heartbeat record.
func (c *ResultCollector) Progress() Progress {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.progress
}

// Records returns the total count of dispatched records.
func (c *ResultCollector) Records() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records
}

func WriteDescription(w *wire.Writer, d Description) error {
	if err := w.WriteByte(protocol.TagDescribe); err != nil {
		return err
	}
	if err := w.WriteUint32(d.Index); err != nil {
		return err
	}
	if err := w.WriteString(d.Mutator); err != nil {
		return err
	}
	return w.WriteString(d.Target)
}

func ReadDescription(r *wire.Reader) (Description, error) {
	var d Description
	var err error
	if d.Index, err = r.ReadUint32(); err != nil {
		return Description{}, err
	}
	if d.Mutator, err = r.ReadString(); err != nil {
		return Description{}, err
	}
	if d.Target, err = r.ReadString(); err != nil {
		return Description{}, err
	}
	return d, nil
}

func WriteReport(w *wire.Writer, rep Report) error {
	if err := w.WriteByte(protocol.TagReport); err != nil {
		return err
	}
	if err := w.WriteUint32(rep.Index); err != nil {
		return err
	}
	if err := w.WriteByte(byte(rep.Status)); err != nil {
		return err
	}
	return w.WriteString(rep.KillingTest)
}

func ReadReport(r *wire.Reader) (Report, error) {
	var rep Report
	index, err := r.ReadUint32()
	if err != nil {
		return Report{}, err
	}
	status, err := r.ReadByte()
	if err != nil {
		return Report{}, err
	}
	test, err := r.ReadString()
	if err != nil {
		return Report{}, err
	}
	rep.Index = index
	rep.Status = DetectionStatus(status)
	rep.KillingTest = test
	return rep, nil
}

func WriteProgress(w *wire.Writer, p Progress) error {
	if err := w.WriteByte(protocol.TagProgress); err != nil {
		return err
	}
	if err := w.WriteUint32(p.Index); err != nil {
		return err
	}
	return w.WriteUint32(p.TestsRun)
}

func ReadProgress(r *wire.Reader) (Progress, error) {
	var p Progress
	var err error
	if p.Index, err = r.ReadUint32(); err != nil {
		return Progress{}, err
	}
	if p.TestsRun, err = r.ReadUint32(); err != nil {
		return Progress{}, err
	}
	return p, nil
}
