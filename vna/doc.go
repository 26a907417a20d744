// Package vna drives a vector network analyzer (NanoVNA family) over its line-oriented
// command protocol and collects S-parameter sweeps.
//
// # Protocol Overview
//
// The instrument is half-duplex: the host writes one command terminated by '\n', the
// instrument prints zero or more response lines and finishes with the prompt line "ch>".
// A Channel enforces a single request in flight and turns each exchange into a slice of
// response lines:
//
//	sweep start 50000      -> (no lines)
//	sweep stop 900000000   -> (no lines)
//	frequencies            -> one frequency in Hz per line
//	data 0                 -> one "<real>,<imag>" S11 sample per line
//	data 1                 -> one "<real>,<imag>" S21 sample per line
//
// Acquire issues this sequence and assembles a NetworkRecord, an immutable value holding
// the three aligned series. Length mismatches are rejected when the record is built.
//
// # Resource Handling
//
// Session opens a transport, runs a function against a Channel and closes the transport on
// every exit path. Measure is Session plus Acquire.
//
// # Errors
//
// Failures carry a sentinel reachable with errors.Is (ErrProtocolTimeout, ErrDecode, ...)
// and, for command failures, a *CommandError naming the command and response line index.
package vna
