package out

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

const defaultIPCTimeout = 2 * time.Second

// IPCClient speaks mpv's JSON IPC protocol: one JSON object per line,
// replies matched by request_id, unsolicited event lines skipped.
type IPCClient struct {
	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	nextID int64
}

type ipcRequest struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

type ipcReply struct {
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	RequestID *int64          `json:"request_id"`
	Event     string          `json:"event"`
}

func DialIPC(ctx context.Context, socketPath string) (*IPCClient, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, err
	}
	return &IPCClient{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// Call sends one command and waits for its reply.
func (c *IPCClient) Call(ctx context.Context, args ...any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	payload, err := json.Marshal(ipcRequest{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("encode mpv command: %w", err)
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultIPCTimeout)
	}
	_ = c.conn.SetDeadline(deadline)
	defer func() { _ = c.conn.SetDeadline(time.Time{}) }()

	if _, err := c.conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write mpv command: %w", err)
	}
	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("read mpv reply: %w", err)
		}
		var reply ipcReply
		if err := json.Unmarshal(line, &reply); err != nil {
			continue
		}
		if reply.Event != "" || reply.RequestID == nil || *reply.RequestID != id {
			continue
		}
		if reply.Error != "success" {
			return nil, fmt.Errorf("mpv %v: %w", args[0], errors.New(reply.Error))
		}
		return reply.Data, nil
	}
}

func (c *IPCClient) Close() error {
	return c.conn.Close()
}
