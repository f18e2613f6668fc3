package comms

// message is the internal lifecycle record of a sent message. A message
// is classified exactly once at send time: either it enters the
// in-transit set and is later delivered, or it enters the dropped set and
// is terminal (kept only for final statistics).
type message struct {
	id      int
	from    string
	to      string
	payload string // plaintext, used at endpoints and in the audit log
	wire    []byte // obfuscated form that travels the network
	dropped bool

	sendTime    float64
	deliverTime float64
}

// ReceivedMessage is one entry in a node's mailbox: the deobfuscated
// payload together with delivery timing.
type ReceivedMessage struct {
	ID       int
	From     string
	Payload  string
	Received float64 // simulation time of delivery
	Latency  float64 // realized transit time
}

// Node is a named endpoint with an append-only mailbox of received
// messages, in receipt order.
type Node struct {
	name    string
	mailbox []ReceivedMessage
}

// Name returns the node's registered name.
func (n *Node) Name() string { return n.name }

// Mailbox returns the received messages in receipt order. The returned
// slice is a copy and safe to retain.
func (n *Node) Mailbox() []ReceivedMessage {
	out := make([]ReceivedMessage, len(n.mailbox))
	copy(out, n.mailbox)
	return out
}

func (n *Node) receive(rm ReceivedMessage) {
	n.mailbox = append(n.mailbox, rm)
}
