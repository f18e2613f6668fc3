// Package comms simulates an unreliable message network between named
// endpoint nodes: configurable base latency with uniform jitter, random
// packet drop, payload obfuscation in transit, a CSV audit log, and a
// tagged console trace. All state transitions happen inside Send and
// Advance calls driven by the simulation loop; the package is
// single-threaded by design.
package comms

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/fatih/color"
)

const defaultLogPath = "comms_log.csv"

var (
	tagSend    = color.New(color.FgCyan)
	tagDrop    = color.New(color.FgYellow)
	tagDeliver = color.New(color.FgGreen)
	tagFailed  = color.New(color.FgRed)
)

// Params configures a Network. BaseLatency, Jitter, and DropProbability
// are a caller contract and are not validated; DropProbability is
// expected in [0, 1].
type Params struct {
	BaseLatency     float64 // seconds
	Jitter          float64 // max +/- perturbation, seconds
	DropProbability float64

	// LogPath is the CSV audit log location; empty means comms_log.csv.
	LogPath string
	// Seed seeds the network's owned random source; 0 means time-seeded.
	Seed int64
	// Trace receives the tagged console lines; nil means os.Stdout.
	Trace io.Writer
}

// Stats summarizes the message traffic of a run.
type Stats struct {
	Sent       int
	Delivered  int
	Dropped    int
	AvgLatency float64 // meaningful only when Delivered > 0
}

// Network owns the node registry, in-flight and dropped message sets,
// delivery counters, and an exclusive pseudorandom source consumed only
// by Send.
type Network struct {
	params Params
	trace  io.Writer
	log    *eventLog
	rng    *rand.Rand

	// byName and order form a single registry; order preserves node
	// registration for the final mailbox dump.
	byName map[string]*Node
	order  []string

	inTransit []message
	dropped   []message

	nextID       int
	delivered    int
	totalLatency float64
}

// New constructs a network and opens its audit log, failing fast if the
// log file cannot be created. The caller must Close the network to flush
// and release the log handle.
func New(params Params) (*Network, error) {
	path := params.LogPath
	if path == "" {
		path = defaultLogPath
	}
	log, err := newEventLog(path)
	if err != nil {
		return nil, err
	}

	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	trace := params.Trace
	if trace == nil {
		trace = os.Stdout
	}

	return &Network{
		params: params,
		trace:  trace,
		log:    log,
		rng:    rand.New(rand.NewSource(seed)),
		byName: make(map[string]*Node),
		nextID: 1,
	}, nil
}

// RegisterNode creates an endpoint under the given name and returns it.
// Registration is idempotent: registering an existing name returns the
// already-registered node so no orphaned entries can exist.
func (n *Network) RegisterNode(name string) *Node {
	if node, ok := n.byName[name]; ok {
		return node
	}
	node := &Node{name: name}
	n.byName[name] = node
	n.order = append(n.order, name)
	return node
}

// Node looks up a registered endpoint by name.
func (n *Network) Node(name string) (*Node, bool) {
	node, ok := n.byName[name]
	return node, ok
}

// Send schedules a message from one node to another at simulation time
// now. The payload is obfuscated into its wire form, a drop outcome is
// drawn once, and a delivery time is sampled regardless of that outcome.
// Dropped messages are terminal at creation and only counted in the
// final statistics. Returns the assigned message id (strictly increasing
// from 1).
func (n *Network) Send(from, to, payload string, now float64) int {
	msg := message{
		id:       n.nextID,
		from:     from,
		to:       to,
		payload:  payload,
		wire:     obfuscate([]byte(payload)),
		sendTime: now,
	}
	n.nextID++

	msg.dropped = n.rng.Float64() < n.params.DropProbability
	msg.deliverTime = now + n.sampleLatency()

	if msg.dropped {
		n.dropped = append(n.dropped, msg)
		fmt.Fprintf(n.trace, "[t=%.3f] %s %s -> %s  msgId=%d  payload=<OBFUSCATED len=%d>\n",
			now, tagDrop.Sprint("[DROP SCHEDULED]"), from, to, msg.id, len(msg.wire))
		n.log.record(eventDropScheduled, now, msg.id, from, to, 0, true, payload)
		return msg.id
	}

	n.inTransit = append(n.inTransit, msg)
	fmt.Fprintf(n.trace, "[t=%.3f] %s %s -> %s  msgId=%d  payload=<OBFUSCATED len=%d>\n",
		now, tagSend.Sprint("[SEND]"), from, to, msg.id, len(msg.wire))
	n.log.record(eventSend, now, msg.id, from, to, 0, false, payload)
	return msg.id
}

// Advance delivers every in-transit message whose delivery time has
// arrived. Messages not yet due stay queued for a later call; dropped
// messages are never revisited. A message addressed to an unregistered
// node is logged as a delivery failure and discarded without touching
// counters or mailboxes.
func (n *Network) Advance(now float64) {
	remaining := n.inTransit[:0]
	for _, msg := range n.inTransit {
		if msg.deliverTime <= now {
			n.deliver(msg, now)
		} else {
			remaining = append(remaining, msg)
		}
	}
	n.inTransit = remaining
}

func (n *Network) deliver(msg message, now float64) {
	dest, ok := n.byName[msg.to]
	if !ok {
		fmt.Fprintf(n.trace, "[t=%.3f] %s unknown node %s for msgId=%d\n",
			now, tagFailed.Sprint("[DELIVERY FAILED]"), msg.to, msg.id)
		return
	}

	latency := msg.deliverTime - msg.sendTime
	n.delivered++
	n.totalLatency += latency

	plaintext := string(obfuscate(msg.wire))
	dest.receive(ReceivedMessage{
		ID:       msg.id,
		From:     msg.from,
		Payload:  plaintext,
		Received: msg.deliverTime,
		Latency:  latency,
	})

	fmt.Fprintf(n.trace, "[t=%.3f] %s %s -> %s  msgId=%d  latency=%.3f  payload=%q\n",
		now, tagDeliver.Sprint("[DELIVER]"), msg.from, msg.to, msg.id, latency, plaintext)
	n.log.record(eventDeliver, now, msg.id, msg.from, msg.to, latency, false, plaintext)
}

// Stats returns the traffic counters accumulated so far.
func (n *Network) Stats() Stats {
	s := Stats{
		Sent:      n.nextID - 1,
		Delivered: n.delivered,
		Dropped:   len(n.dropped),
	}
	if n.delivered > 0 {
		s.AvgLatency = n.totalLatency / float64(n.delivered)
	}
	return s
}

// WriteSummary writes the end-of-run statistics and a full dump of every
// node's mailbox, nodes in registration order and messages in receipt
// order.
func (n *Network) WriteSummary(w io.Writer, finalTime float64) {
	fmt.Fprintf(w, "\n=== Simulation Summary (t=%.3f) ===\n", finalTime)
	fmt.Fprintf(w, "Delivered messages: %d\n", n.delivered)
	fmt.Fprintf(w, "Dropped messages:   %d\n", len(n.dropped))
	if n.delivered > 0 {
		fmt.Fprintf(w, "Average latency:    %.3f s\n", n.totalLatency/float64(n.delivered))
	}

	fmt.Fprintln(w, "\nPer-node inbox contents:")
	for _, name := range n.order {
		node := n.byName[name]
		fmt.Fprintf(w, "Node %s:\n", name)
		for _, rm := range node.mailbox {
			fmt.Fprintf(w, "  at t=%.3f  from=%s  id=%d  latency=%.3f  payload=%q\n",
				rm.Received, rm.From, rm.ID, rm.Latency, rm.Payload)
		}
	}
}

// Summary prints the end-of-run summary to the network's trace writer.
func (n *Network) Summary(finalTime float64) {
	n.WriteSummary(n.trace, finalTime)
}

// Close flushes and releases the audit log. Idempotent.
func (n *Network) Close() error {
	return n.log.close()
}

func (n *Network) sampleLatency() float64 {
	jitter := (n.rng.Float64()*2 - 1) * n.params.Jitter
	return n.params.BaseLatency + jitter
}
