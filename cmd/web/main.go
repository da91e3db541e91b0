package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/tomz197/neonrush/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

// renderPage fills the landing page template with the SSH host to show.
func renderPage(sshHost string) string {
	return strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "ignoring .env: %v\n", err)
	}
	logger := config.NewLogger(os.Stderr, config.GetEnv("NEONRUSH_LOG_LEVEL", "info"), "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	page := renderPage(config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"))

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
