package coordinator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mutware/mutctl/internal/config"
	"github.com/mutware/mutctl/internal/mutators"
	"github.com/mutware/mutctl/internal/observability"
	"github.com/mutware/mutctl/internal/protocol"
	"github.com/mutware/mutctl/internal/worker"
)

var (
	ErrInvalidHeartbeatInterval = errors.New("coordinator: invalid heartbeat interval")
	ErrInvalidMaxAttempts       = errors.New("coordinator: invalid max attempts")
	ErrAttemptsExhausted        = errors.New("coordinator: worker attempts exhausted")
)

// Launcher spawns one worker process that dials the given address. The
// session does not supervise the process; it only owns the socket pair.
type Launcher interface {
	Launch(ctx context.Context, addr net.Addr) error
}

// ServiceConfig configures coordinator standalone runtime defaults.
type ServiceConfig struct {
	Name              string
	OpsAddr           string
	CorsOrigins       []string
	WorkerBindAddr    string
	SessionTimeout    time.Duration
	MaxAttempts       int
	HeartbeatInterval time.Duration
	Backoff           BackoffConfig
	Run               config.RunConfig
}

// Coordinator service defaults for standalone runtime configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:              "mutctl",
		OpsAddr:           "",
		WorkerBindAddr:    "127.0.0.1:0",
		MaxAttempts:       3,
		HeartbeatInterval: 5 * time.Second,
		Backoff:           DefaultBackoffConfig(),
		Run: config.RunConfig{
			Mutators: []string{mutators.GroupDefaults},
		},
	}
}

// Service runs the coordinator lifecycle as a standalone process.
type Service struct {
	cfg      ServiceConfig
	registry *mutators.Registry
	runLog   *RunLog
	launcher Launcher
	seq      atomic.Uint64
}

// Coordinator service constructor using default standalone config.
func NewService(launcher Launcher) *Service {
	return NewServiceWithConfig(DefaultServiceConfig(), launcher)
}

// Coordinator service constructor using explicit config.
func NewServiceWithConfig(cfg ServiceConfig, launcher Launcher) *Service {
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = "mutctl"
	}
	if strings.TrimSpace(cfg.WorkerBindAddr) == "" {
		cfg.WorkerBindAddr = "127.0.0.1:0"
	}
	if cfg.Backoff.InitialDelay <= 0 {
		cfg.Backoff = DefaultBackoffConfig()
	}
	return &Service{
		cfg:      cfg,
		registry: mutators.NewRegistry(),
		runLog:   NewRunLog(),
		launcher: launcher,
	}
}

func (s *Service) Registry() *mutators.Registry {
	return s.registry
}

func (s *Service) RunLog() *RunLog {
	return s.runLog
}

// Coordinator runtime entrypoint that blocks until process signal
// shutdown or a fatal run failure.
func (s *Service) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := s.bootstrap(); err != nil {
		return err
	}
	return s.serve(ctx)
}

// Coordinator bootstrap validates config and fails fast on mutator
// names that do not resolve.
func (s *Service) bootstrap() error {
	if s.cfg.HeartbeatInterval <= 0 {
		return ErrInvalidHeartbeatInterval
	}
	if s.cfg.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}
	resolved, err := s.registry.Resolve(s.cfg.Run.Mutators)
	if err != nil {
		return err
	}
	log.Info().
		Str("node", s.cfg.Name).
		Strs("mutator_names", s.cfg.Run.Mutators).
		Int("resolved", len(resolved)).
		Msg("coordinator ready")
	return nil
}

// Coordinator main loop for heartbeat logging, the ops server, and the
// supervised analysis run.
func (s *Service) serve(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.HeartbeatInterval)
	defer ticker.Stop()

	opsErr := make(chan error, 1)
	if strings.TrimSpace(s.cfg.OpsAddr) != "" {
		server := NewServer(s.cfg.Name, s.cfg.OpsAddr, s.cfg.CorsOrigins, s.registry, s.runLog)
		go func() {
			opsErr <- server.Serve()
		}()
	}

	analysisErr := make(chan error, 1)
	go func() {
		_, err := s.RunAnalysis(ctx, s.nextRunID())
		analysisErr <- err
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("node", s.cfg.Name).Msg("coordinator shutdown")
			return nil
		case err := <-opsErr:
			if err != nil {
				return err
			}
		case err := <-analysisErr:
			if err != nil && ctx.Err() == nil {
				return err
			}
		case <-ticker.C:
			runs := len(s.runLog.List())
			log.Info().
				Str("node", s.cfg.Name).
				Int("runs", runs).
				Msg("coordinator heartbeat")
		}
	}
}

// RunAnalysis performs one mutation analysis run: resolve the
// configured mutator names, launch a worker, supervise the session,
// and respawn with backoff when the socket fails before a clean
// finish. Dispatch and payload errors are not retried.
func (s *Service) RunAnalysis(ctx context.Context, runID string) (RunOutcome, error) {
	resolved, err := s.registry.Resolve(s.cfg.Run.Mutators)
	if err != nil {
		return RunOutcome{}, err
	}
	args := worker.NewArgs(runID, resolved)
	args.TargetPatterns = s.cfg.Run.TargetPatterns
	if s.cfg.Run.TestTimeoutMS > 0 {
		args.TestTimeoutMS = uint64(s.cfg.Run.TestTimeoutMS)
	}
	args.Verbose = s.cfg.Run.Verbose
	if err := args.Validate(); err != nil {
		return RunOutcome{}, err
	}

	started := time.Now()
	outcome := RunOutcome{RunID: runID, StartedAt: started}
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		outcome.Attempts = attempt
		code, records, runErr := s.runSessionOnce(ctx, args)
		if runErr == nil {
			outcome.ExitCode = code
			outcome.Success = code == 0
			outcome.Failure = ""
			outcome.Records = records
			outcome.Duration = time.Since(started)
			s.runLog.Upsert(outcome)
			observability.RecordWorkerSession(s.cfg.Name, code.String(), outcome.Success, outcome.Duration)
			observability.RecordResultRecords(s.cfg.Name, "result", records)
			log.Info().
				Str("run_id", runID).
				Stringer("exit_code", code).
				Uint64("records", records).
				Int("attempt", attempt).
				Msg("analysis run complete")
			return outcome, nil
		}

		lastErr = runErr
		outcome.Failure = runErr.Error()
		outcome.Duration = time.Since(started)
		s.runLog.Upsert(outcome)

		var ioErr *worker.IOError
		if !errors.As(runErr, &ioErr) {
			observability.RecordWorkerSession(s.cfg.Name, "dispatch_error", false, time.Since(started))
			return outcome, runErr
		}
		observability.RecordWorkerSession(s.cfg.Name, "io_error", false, time.Since(started))
		log.Warn().
			Str("run_id", runID).
			Int("attempt", attempt).
			Err(runErr).
			Msg("worker session failed")
		if attempt == s.cfg.MaxAttempts {
			break
		}
		if err := s.waitRespawnBackoff(ctx, attempt); err != nil {
			return outcome, err
		}
	}
	err = fmt.Errorf("%w: run_id=%s attempts=%d: %w", ErrAttemptsExhausted, runID, s.cfg.MaxAttempts, lastErr)
	outcome.Failure = err.Error()
	s.runLog.Upsert(outcome)
	return outcome, err
}

// One listen/launch/session cycle. The session owns both sockets; the
// timeout watcher and context cancellation act through Abort only.
func (s *Service) runSessionOnce(ctx context.Context, args worker.Args) (protocol.ExitCode, uint64, error) {
	ln, err := net.Listen("tcp", s.cfg.WorkerBindAddr)
	if err != nil {
		return 0, 0, &worker.IOError{Op: "listen", Err: err}
	}

	collector := worker.NewResultCollector()
	session := worker.NewSession(ln, args, collector)

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go s.watchSession(watchCtx, session)

	if s.launcher != nil {
		go func() {
			if lerr := s.launcher.Launch(ctx, session.Addr()); lerr != nil {
				log.Warn().
					Str("run_id", args.RunID).
					Err(lerr).
					Msg("worker launch failed")
			}
		}()
	}

	code, runErr := session.Run()
	return code, collector.Records(), runErr
}

// Aborts the session when the watch context ends or the configured
// session timeout elapses. Abort on an already finished session is a
// no-op, so firing after a clean run is safe. Zero timeout means no
// deadline.
func (s *Service) watchSession(ctx context.Context, session *worker.Session) {
	var timeoutC <-chan time.Time
	if s.cfg.SessionTimeout > 0 {
		timer := time.NewTimer(s.cfg.SessionTimeout)
		defer timer.Stop()
		timeoutC = timer.C
	}
	select {
	case <-ctx.Done():
		session.Abort()
	case <-timeoutC:
		log.Warn().
			Dur("session_timeout", s.cfg.SessionTimeout).
			Msg("worker session timed out")
		session.Abort()
	}
}

// Coordinator respawn backoff wait helper with deterministic delay.
func (s *Service) waitRespawnBackoff(ctx context.Context, attempt int) error {
	backoffCfg := s.cfg.Backoff
	backoffCfg.Jitter = false
	delay := NextBackoffDelay(backoffCfg, attempt, nil)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) nextRunID() string {
	seq := s.seq.Add(1)
	return fmt.Sprintf("run.%s.%d", s.cfg.Name, seq)
}
