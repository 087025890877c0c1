// internal/transport/transport.go
package transport

import "github.com/tamzrod/pemf-controller/internal/protocol"

// Sink is a one-way command channel to a module.
//
// Contract: there is NO delivery confirmation. Send returns nothing because
// the modules never acknowledge; a write to a disconnected module looks
// exactly like a successful one to the caller. Implementations log failures.
type Sink interface {
	Send(cmd protocol.Command)
}

// Querier is a Sink that can also ask for one reply line.
// Query sends cmd, waits the implementation's fixed reply window and returns
// whatever line arrived (without the trailing newline), or "" if none did.
type Querier interface {
	Sink
	Query(cmd protocol.Command) string
}
