// Package msgs provides L1 messages exposing a servo to L2.
package msgs

// Messages are protobuf encoded and wrapped in Typed, which carries
// the type ID and, for commands and replies, a sequence number.
//
// Producer: L1 servo controller
// Consumer: L2 brain, monitors
