package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/neonrush/internal/config"
	"github.com/tomz197/neonrush/internal/draw"
	"github.com/tomz197/neonrush/internal/loop"
	"github.com/tomz197/neonrush/internal/save"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultSaveDir     = "/app/saves"

	// Sessions get the shutdown screen for loop.ShutdownDisplaySeconds; wait
	// a little longer before closing the listener.
	shutdownGrace = loop.ShutdownDisplaySeconds*time.Second + 5*time.Second
)

// gameServer hands every SSH session its own independent game. A save file
// belongs to at most one live session at a time.
type gameServer struct {
	logger   *log.Logger
	saveDir  string
	shutdown chan struct{}
	sessions sync.WaitGroup

	mu     sync.Mutex
	active map[string]int // Live sessions per save path
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "ignoring .env: %v\n", err)
	}
	logger := config.NewLogger(os.Stderr, config.GetEnv("NEONRUSH_LOG_LEVEL", "info"), "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	saveDir := config.GetEnv("SSH_SAVE_DIR", defaultSaveDir)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "saveDir", saveDir)

	gs := &gameServer{
		logger:   logger,
		saveDir:  saveDir,
		shutdown: make(chan struct{}),
		active:   make(map[string]int),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gs.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and give them the countdown to disconnect
	gs.stop(shutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// stop shows every session the shutdown screen and waits up to grace for
// them to end.
func (gs *gameServer) stop(grace time.Duration) {
	close(gs.shutdown)

	finished := make(chan struct{})
	go func() {
		gs.sessions.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		gs.logger.Info("all sessions ended")
	case <-time.After(grace):
		gs.logger.Warn("sessions still open after grace period", "grace", grace)
	}
}

// savePath returns the per-user save file.
func (gs *gameServer) savePath(user string) string {
	return filepath.Join(gs.saveDir, saveName(user)+".txt")
}

// claim reserves path for one session. It reports false while another
// session holds it; otherwise the caller must call release when done.
func (gs *gameServer) claim(path string) (release func(), ok bool) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.active[path] > 0 {
		return nil, false
	}
	gs.active[path]++

	var once sync.Once
	return func() {
		once.Do(func() {
			gs.mu.Lock()
			defer gs.mu.Unlock()
			if gs.active[path]--; gs.active[path] <= 0 {
				delete(gs.active, path)
			}
		})
	}, true
}

// saveName maps an SSH user name to a safe file name. Names that needed
// rewriting get a hash of the raw name after a '.', which clean names never
// contain, so distinct users never share a file.
func saveName(user string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, user)
	if name == user && user != "" {
		return name
	}
	if strings.Trim(name, "_") == "" {
		name = "anonymous"
	}
	h := fnv.New32a()
	h.Write([]byte(user))
	return fmt.Sprintf("%s.%08x", name, h.Sum32())
}

// middleware handles SSH sessions and runs one game per session.
func (gs *gameServer) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := gs.logger.With("user", sess.User())

		path := gs.savePath(sess.User())
		release, ok := gs.claim(path)
		if !ok {
			logger.Warn("refused concurrent session", "save", path)
			fmt.Fprintf(sess, "User %q is already playing in another session. Close it and try again.\n", sess.User())
			return
		}
		defer release()

		gs.sessions.Add(1)
		defer gs.sessions.Done()

		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		err := loop.Run(reader, sess, loop.Options{
			TermSizeFunc:   sizeTracker.getSize,
			Store:          save.NewFileStore(path),
			Logger:         logger,
			IdleDisconnect: true,
			Shutdown:       gs.shutdown,
		})
		if err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
