package comms

import (
	"bufio"
	"fmt"
	"os"
)

// Event names recorded in the comms audit log.
const (
	eventSend          = "send"
	eventDropScheduled = "drop_scheduled"
	eventDeliver       = "deliver"
)

// eventLog is the CSV audit log of every message lifecycle event. The
// file is created fresh (truncating any prior run) when the network is
// constructed and held open for the network's lifetime. The payload
// column always carries the double-quoted plaintext for auditability;
// only the console trace shows the obfuscated wire length.
type eventLog struct {
	file *os.File
	w    *bufio.Writer
}

func newEventLog(path string) (*eventLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create comms log %s: %w", path, err)
	}
	l := &eventLog{file: f, w: bufio.NewWriter(f)}
	fmt.Fprintln(l.w, "event,time,id,from,to,latency,dropped,payload")
	return l, nil
}

// record writes one CSV row. Latency is 0 on send and drop_scheduled rows
// (unknown until actual delivery) and the realized value on deliver rows.
func (l *eventLog) record(event string, t float64, id int, from, to string, latency float64, dropped bool, payload string) {
	d := 0
	if dropped {
		d = 1
	}
	fmt.Fprintf(l.w, "%s,%.3f,%d,%s,%s,%.3f,%d,%q\n", event, t, id, from, to, latency, d, payload)
}

// close flushes buffered rows and releases the file handle. Safe to call
// more than once.
func (l *eventLog) close() error {
	if l.file == nil {
		return nil
	}
	flushErr := l.w.Flush()
	closeErr := l.file.Close()
	l.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
