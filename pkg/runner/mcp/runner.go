package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/weekplan/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	defaultPath     = "/mcp"
	shutdownTimeout = 5 * time.Second
)

// HTTPOptions configures the streamable HTTP endpoint.
type HTTPOptions struct {
	Addr     string
	Path     string
	CertFile string
	KeyFile  string
}

// TLS reports whether the endpoint serves HTTPS.
func (o HTTPOptions) TLS() bool {
	return o.CertFile != "" && o.KeyFile != ""
}

// resolve fills defaults and rejects a half configured TLS pair.
func (o HTTPOptions) resolve() (HTTPOptions, error) {
	o.Addr = strings.TrimSpace(o.Addr)
	o.Path = strings.TrimSpace(o.Path)
	o.CertFile = strings.TrimSpace(o.CertFile)
	o.KeyFile = strings.TrimSpace(o.KeyFile)

	if (o.CertFile == "") != (o.KeyFile == "") {
		return o, errors.New("mcp: both tls cert and key must be provided")
	}
	if o.Addr == "" {
		o.Addr = defaultAddr
	}
	if o.Path == "" {
		o.Path = defaultPath
	}
	if !strings.HasPrefix(o.Path, "/") {
		o.Path = "/" + o.Path
	}
	return o, nil
}

// Runner exposes a planner service as an MCP server.
type Runner struct {
	Service *app.Service
	Name    string
	Version string

	Transport Transport
	HTTP      HTTPOptions
	// OnListening is called once the HTTP listener is bound.
	OnListening func(addr net.Addr, opts HTTPOptions)
}

// Do serves until the transport finishes or ctx is cancelled.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp: runner requires a service")
	}
	switch r.Transport {
	case "", TransportHTTP:
		opts, err := r.HTTP.resolve()
		if err != nil {
			return err
		}
		return r.serveHTTP(ctx, r.newServer(), opts)
	case TransportStdio:
		return server.ServeStdio(r.newServer())
	default:
		return fmt.Errorf("mcp: unknown transport %q", r.Transport)
	}
}

func (r Runner) newServer() *server.MCPServer {
	name, version := r.Name, r.Version
	if name == "" {
		name = "weekplan"
	}
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(name+" MCP", version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read the week layout and create, move, complete or skip planned tasks."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	svc := NewService(r.Service)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, opts HTTPOptions) error {
	mux := http.NewServeMux()
	mux.Handle(opts.Path, server.NewStreamableHTTPServer(srv))
	hs := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", opts.Addr, err)
	}
	if r.OnListening != nil {
		r.OnListening(ln.Addr(), opts)
	}

	if ctx != nil {
		stop := context.AfterFunc(ctx, func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = hs.Shutdown(sctx)
		})
		defer stop()
	}

	if opts.TLS() {
		err = hs.ServeTLS(ln, opts.CertFile, opts.KeyFile)
	} else {
		err = hs.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
