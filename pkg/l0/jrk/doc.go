// Package jrk provides the host side of the jrk motor controller
// compact serial protocol.
package jrk

// The protocol is a small fixed set of commands exchanged over a byte
// channel (usually the jrk's USB command port). Every command starts
// with a byte that has bit 7 set, data bytes always have bit 7 clear.
//
//   Get Feedback  A5             -> lo hi
//   Get Target    A3             -> lo hi
//   Set Target    C0|(v&1f) v>>5 -> (nothing)
//
// Set Target has no reply. A complete write is the only acknowledgment
// the host ever gets, there is no way to confirm the jrk applied it.
// Do not read after Set Target: nothing will arrive and the read only
// burns the channel timeout.
//
// The functions in this package keep no state. Exchanges on the same
// Channel must not overlap, callers serialize them.
//
// Producer: jrk firmware
// Consumer: L1 servo controller
