package notify

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

const (
	// DefaultSocketPath is where a companion notification daemon listens.
	DefaultSocketPath = "/tmp/taildropmenu-notify.sock"
	// MaxSocketPayload is the largest JSON payload the daemon accepts.
	MaxSocketPayload = 32 * 1024
	// DefaultSocketTimeout bounds each socket operation.
	DefaultSocketTimeout = 3 * time.Second
)

// Socket hands notifications to a local daemon over a Unix domain socket.
// Each message is a 4-byte little-endian length followed by the JSON payload;
// the daemon may answer with a JSON object carrying an "error" field.
type Socket struct {
	Path    string
	Timeout time.Duration

	pending sync.WaitGroup
}

func NewSocket(path string) *Socket {
	if path == "" {
		path = DefaultSocketPath
	}
	return &Socket{Path: path, Timeout: DefaultSocketTimeout}
}

// Notify checks and encodes n, then talks to the daemon in the background.
// Delivery failures are logged. Use Send to wait for the daemon's answer.
func (s *Socket) Notify(ctx context.Context, n Notification) error {
	frame, err := s.encode(n)
	if err != nil {
		return err
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.exchange(context.WithoutCancel(ctx), frame); err != nil {
			slog.Warn("Socket notification failed", "socket", s.Path, "title", n.Title, "error", err)
		}
	}()
	return nil
}

// Send delivers n and waits for the daemon's reply.
func (s *Socket) Send(ctx context.Context, n Notification) error {
	frame, err := s.encode(n)
	if err != nil {
		return err
	}
	return s.exchange(ctx, frame)
}

// Wait blocks until every notification started by Notify is done.
func (s *Socket) Wait() {
	s.pending.Wait()
}

func (s *Socket) encode(n Notification) ([]byte, error) {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil, fmt.Errorf("unix socket not found: %s (is the notification daemon running?)", s.Path)
	}

	payload, err := sonic.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize notification: %w", err)
	}
	if len(payload) > MaxSocketPayload {
		return nil, fmt.Errorf("notification payload too large: %d bytes (max %d)", len(payload), MaxSocketPayload)
	}

	frame := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[4:], payload)
	return frame, nil
}

func (s *Socket) exchange(ctx context.Context, frame []byte) error {
	dialer := net.Dialer{Timeout: s.timeout()}
	conn, err := dialer.DialContext(ctx, "unix", s.Path)
	if err != nil {
		return fmt.Errorf("failed to connect to unix socket %s: %w", s.Path, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("Failed to close notification socket", "error", err)
		}
	}()

	if err := conn.SetDeadline(time.Now().Add(s.timeout())); err != nil {
		slog.Debug("Failed to set socket deadline", "error", err)
	}

	if _, err := conn.Write(frame); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}

	buf := make([]byte, 4096)
	read, err := conn.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read notification response: %w", err)
	}
	if read == 0 {
		return nil
	}

	var response map[string]any
	if err := sonic.Unmarshal(buf[:read], &response); err != nil {
		slog.Debug("Unparseable notification response", "raw", string(buf[:read]))
		return nil
	}
	if msg, ok := response["error"].(string); ok && msg != "" {
		return fmt.Errorf("notification daemon returned error: %s", msg)
	}
	return nil
}

func (s *Socket) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultSocketTimeout
	}
	return s.Timeout
}
