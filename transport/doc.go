// Package transport provides the newline-delimited, half-duplex byte channel that the
// go-vna command layer talks through.
//
// A Transport reads one text line at a time with a bounded per-read timeout and writes raw
// bytes. Two implementations are provided:
//
//   - Open: a line transport over a serial port (USB CDC devices such as the NanoVNA appear
//     as /dev/ttyACM0 or COMn) or over a TCP socket exposed by a serial bridge such as ser2net.
//   - MemTransport: an in-memory transport that answers written commands through a Responder,
//     used by tests and by the instrument simulator.
//
// # Line Semantics
//
// Lines are terminated by '\n'; a trailing '\r' is stripped. A read that does not complete a
// line within the timeout fails with ErrTimeout. If an unterminated fragment is pending at that
// point, the error is a *PartialLineError carrying the fragment and the fragment is dropped.
// Instruments such as the NanoVNA print their prompt ("ch> ") without a terminator, so callers
// recognise the prompt from the fragment and treat any other fragment as a stalled device.
//
// Transports are not goroutine-safe for ReadLine and Write; the caller must keep a single
// request in flight, consistent with the half-duplex nature of the instrument. Close may be
// called from any goroutine.
package transport
