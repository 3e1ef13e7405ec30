package manager

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hoppxi/brightkeep/internal/instance"
	"github.com/hoppxi/brightkeep/pkg/brightness"
)

// Controller is the part of the brightness controller exposed over IPC.
type Controller interface {
	CurrentLevel() brightness.Level
	Adjust(arg string) (brightness.Level, error)
}

type AppManager struct {
	mu         sync.Mutex
	socketPath string
	ctl        Controller
	token      string
	listener   net.Listener
	stopOnce   sync.Once
	stopped    chan struct{}
	log        *zap.Logger
}

var Manage = New("", nil)

// New returns a manager listening on socketPath, or on the default runtime
// socket when socketPath is empty.
func New(socketPath string, log *zap.Logger) *AppManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &AppManager{socketPath: socketPath, stopped: make(chan struct{}), log: log}
}

func getSocketPath() string {
	return filepath.Join(instance.RuntimeDir(), "socket.sock")
}

// SocketPath returns the unix socket used for IPC.
func (m *AppManager) SocketPath() string {
	if m.socketPath != "" {
		return m.socketPath
	}
	return getSocketPath()
}

// SetLogger replaces the manager's logger.
func (m *AppManager) SetLogger(log *zap.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = log
}

// Attach sets the controller served over IPC and the instance token reported
// by STATUS.
func (m *AppManager) Attach(ctl Controller, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctl = ctl
	m.token = token
}

// StartIPCServer listens on the socket and serves connections in the
// background. Call it only while holding the instance guard: a stale socket
// left by a crashed daemon is removed.
func (m *AppManager) StartIPCServer() error {
	socketPath := m.SocketPath()
	_ = os.Remove(socketPath)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("error listening on socket: %w", err)
	}

	m.mu.Lock()
	m.listener = listener
	log := m.log
	m.mu.Unlock()

	log.Info("IPC server listening", zap.String("socket", socketPath))

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				log.Debug("IPC accept failed", zap.Error(err))
				continue
			}
			go m.handleConnection(conn)
		}
	}()
	return nil
}

func (m *AppManager) handleConnection(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return
	}

	m.mu.Lock()
	ctl, token, log := m.ctl, m.token, m.log
	m.mu.Unlock()

	command, arg, _ := strings.Cut(strings.TrimSpace(string(buf[:n])), " ")
	log.Debug("IPC command", zap.String("command", command), zap.String("arg", arg))

	if ctl == nil && command != "STOP" {
		_, _ = conn.Write([]byte("ERR: not ready"))
		return
	}

	switch strings.ToUpper(command) {
	case "GET":
		fmt.Fprintf(conn, "OK: %d", int(ctl.CurrentLevel()))

	case "SET":
		level, err := ctl.Adjust(arg)
		if err != nil {
			fmt.Fprintf(conn, "ERR: %v", err)
			return
		}
		fmt.Fprintf(conn, "OK: %d", int(level))

	case "STATUS":
		fmt.Fprintf(conn, "OK: running level=%d token=%s", int(ctl.CurrentLevel()), token)

	case "STOP":
		log.Info("received STOP via IPC, shutting down")
		_, _ = conn.Write([]byte("OK: Shutting down."))
		m.stopOnce.Do(func() { close(m.stopped) })

	default:
		_, _ = conn.Write([]byte("ERR: unknown command"))
	}
}

// Stopped is closed when a client sends STOP.
func (m *AppManager) Stopped() <-chan struct{} {
	return m.stopped
}

// StopAll closes the listener and removes the socket file.
func (m *AppManager) StopAll() {
	m.mu.Lock()
	listener := m.listener
	m.listener = nil
	m.mu.Unlock()

	if listener != nil {
		_ = listener.Close()
		_ = os.Remove(m.SocketPath())
	}
}

func (m *AppManager) ConnectIPC() (net.Conn, error) {
	return net.DialTimeout("unix", m.SocketPath(), 500*time.Millisecond)
}

// SendIPCCommand sends one command and returns the raw response.
func (m *AppManager) SendIPCCommand(cmd string) (string, error) {
	conn, err := m.ConnectIPC()
	if err != nil {
		return "", err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))

	if _, err := conn.Write([]byte(cmd)); err != nil {
		return "", err
	}

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	return string(buf[:n]), nil
}

// ParseResponse splits an "OK: ..." / "ERR: ..." reply.
func ParseResponse(resp string) (string, error) {
	switch {
	case strings.HasPrefix(resp, "OK:"):
		return strings.TrimSpace(strings.TrimPrefix(resp, "OK:")), nil
	case strings.HasPrefix(resp, "ERR:"):
		return "", errors.New(strings.TrimSpace(strings.TrimPrefix(resp, "ERR:")))
	default:
		return "", fmt.Errorf("unexpected response %q", resp)
	}
}
