// Package protocol owns the coordinator<->worker wire contract.
//
// Ownership boundary:
// - result stream tag bytes and the DONE sentinel
// - exit code trailer decoding
// - typed field codec (wire subpackage)
package protocol
