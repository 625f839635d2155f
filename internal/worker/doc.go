// Package worker owns the coordinator-side session with one worker
// process.
//
// Ownership boundary:
// - accept/send/receive/close session life cycle
// - initial configuration payload (Args)
// - result record shapes and the default ResultCollector dispatcher
//
// A session serves exactly one client on a single-use listener. The
// payload writer and the record dispatcher are injected so the
// skeleton stays independent of any particular worker payload shape.
package worker
