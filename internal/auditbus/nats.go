// Package auditbus is the fire-and-forget audit event publisher (spec
// §6A): one JSON event per served request, best-effort over NATS,
// adapted from the toolbox's queue.Manager.
package auditbus

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Subject pattern for request audit events (spec §6A).
const subjectPattern = "odata.request.%s"

// Event is the JSON payload published for every served collection or
// entity request.
type Event struct {
	RequestID  string `json:"requestId"`
	Resource   string `json:"resource"`
	Operation  string `json:"operation"`
	Status     int    `json:"status"`
	DurationMs int64  `json:"durationMs"`
}

// Bus publishes audit events to NATS. A Bus with a nil connection is
// a no-op, so the service runs standalone when NATS_URL is unset.
type Bus struct {
	conn *nats.Conn
}

// Connect dials NATS with the toolbox's reconnect options. An empty
// url yields a no-op Bus.
func Connect(url string) (*Bus, error) {
	if url == "" {
		log.Println("auditbus: NATS_URL not set, audit events disabled")
		return &Bus{}, nil
	}

	options := []nats.Option{
		nats.Name("RESO OData Gateway"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Printf("auditbus: disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("auditbus: reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Println("auditbus: connection closed")
		}),
	}

	conn, err := nats.Connect(url, options...)
	if err != nil {
		return nil, err
	}
	log.Printf("auditbus: connected to %s", url)

	return &Bus{conn: conn}, nil
}

// Close releases the NATS connection, if any.
func (b *Bus) Close() {
	if b.conn != nil {
		b.conn.Close()
	}
}

// Publish fires an audit event for resource/operation on its own
// goroutine; a publish failure is logged and swallowed, never
// propagated to the caller (spec §6A).
func (b *Bus) Publish(resource, operation string, status int, duration time.Duration) {
	if b.conn == nil {
		return
	}

	event := Event{
		RequestID:  uuid.NewString(),
		Resource:   resource,
		Operation:  operation,
		Status:     status,
		DurationMs: duration.Milliseconds(),
	}

	go func() {
		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("auditbus: marshal failed: %v", err)
			return
		}
		subject := subjectFor(resource)
		if err := b.conn.Publish(subject, data); err != nil {
			log.Printf("auditbus: publish to %s failed: %v", subject, err)
		}
	}()
}

func subjectFor(resource string) string {
	return fmt.Sprintf(subjectPattern, resource)
}
