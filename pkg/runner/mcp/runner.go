package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/lyfocus/pkg/app"
	"tableflip.dev/lyfocus/pkg/schedule"
	"tableflip.dev/lyfocus/pkg/store"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Service *app.Service
	// Store, when it can watch, triggers a reload on outside writes.
	Store  store.Persistence
	Logger *slog.Logger
	// Backup runs on BackupSchedule while the server is up. Either may be
	// empty.
	Backup         *schedule.Backup
	BackupSchedule string

	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp runner requires a session")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	name := r.Name
	if name == "" {
		name = "lyfocus"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Track todos, habits, moods, energy, gratitude, journal entries and goals, and read streaks, XP and insights via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Service)
	registerResources(srv, svc)
	registerTools(srv, svc)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := r.watch(ctx, logger); err != nil {
		return err
	}
	if r.Backup != nil && r.BackupSchedule != "" {
		if err := r.Backup.Start(r.BackupSchedule); err != nil {
			return err
		}
		defer r.Backup.Stop()
		logger.Info("scheduled backups", "schedule", r.BackupSchedule, "dir", r.Backup.Dir, "next", r.Backup.Next())
	}

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// watch reloads the session whenever another process writes the store.
func (r Runner) watch(ctx context.Context, logger *slog.Logger) error {
	w, ok := r.Store.(store.Watcher)
	if !ok {
		return nil
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	ns := r.Service.Namespace()
	go func() {
		for ev := range events {
			if !relevant(ev, ns) {
				continue
			}
			// One reload covers whatever else is already queued.
			for drained := false; !drained; {
				select {
				case _, ok := <-events:
					drained = !ok
				default:
					drained = true
				}
			}
			logger.Debug("store changed, reloading", "key", ev.Key)
			r.Service.Reload(ctx)
		}
	}()
	return nil
}

// relevant reports whether ev may have changed state in namespace ns.
func relevant(ev store.Event, ns string) bool {
	if ev.Type == store.EventInvalidated {
		return true
	}
	_, ok := store.Field(ns, ev.Key)
	return ok
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	if (r.HTTPServerCert != "" && r.HTTPServerKey == "") || (r.HTTPServerCert == "" && r.HTTPServerKey != "") {
		return errors.New("both http tls cert and key must be provided")
	}

	handler := server.NewStreamableHTTPServer(srv)

	path := r.HTTPEndpointPath
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	httpSrv := &http.Server{
		Handler: mux,
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	if ctx != nil {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()
	}

	if r.HTTPServerCert != "" && r.HTTPServerKey != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
