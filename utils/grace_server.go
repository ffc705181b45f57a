package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultReadTimeout  = 60 * time.Second
	defaultWriteTimeout = defaultReadTimeout

	gracefulEnvironKey = "IS_GRACEFUL"
	gracefulListenerFD = 3
)

// Server wraps http.Server to support graceful shutdown on SIGTERM and
// zero-downtime binary handover on SIGUSR2 (the listener fd is inherited by
// the replacement process).
type Server struct {
	*http.Server

	listener     net.Listener
	isGraceful   bool
	signalChan   chan os.Signal
	shutdownChan chan struct{}
	onShutdown   func()
}

// NewServer creates a Server with the given timeouts and handler. onShutdown
// runs after in-flight requests drain, before the process exits serving.
func NewServer(addr string, handler http.Handler, onShutdown func()) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		isGraceful:   os.Getenv(gracefulEnvironKey) != "",
		signalChan:   make(chan os.Signal, 1),
		shutdownChan: make(chan struct{}),
		onShutdown:   onShutdown,
	}
}

// ListenAndServe starts serving and blocks until shutdown completes.
func (srv *Server) ListenAndServe() error {
	ln, err := srv.netListener()
	if err != nil {
		return err
	}
	srv.listener = ln

	go srv.handleSignals()
	err = srv.Server.Serve(srv.listener)
	// Serve returns as soon as Shutdown is called; wait for the drain.
	<-srv.shutdownChan
	return err
}

func (srv *Server) netListener() (net.Listener, error) {
	if srv.isGraceful {
		file := os.NewFile(gracefulListenerFD, "")
		ln, err := net.FileListener(file)
		if err != nil {
			return nil, fmt.Errorf("net.FileListener error: %w", err)
		}
		return ln, nil
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("net.Listen error: %w", err)
	}
	return ln, nil
}

func (srv *Server) handleSignals() {
	signal.Notify(srv.signalChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGUSR2)

	for sig := range srv.signalChan {
		switch sig {
		case syscall.SIGTERM, syscall.SIGINT:
			if Sugar != nil {
				Sugar.Infof("received %s, shutting down HTTP server", sig)
			}
			srv.drainAndStop()
			return
		case syscall.SIGUSR2:
			pid, err := srv.startReplacement()
			if err != nil {
				if Sugar != nil {
					Sugar.Errorf("graceful restart failed: %v, continuing to serve", err)
				}
				continue
			}
			if Sugar != nil {
				Sugar.Infof("replacement process started, pid=%d; draining old server", pid)
			}
			srv.drainAndStop()
			return
		}
	}
}

func (srv *Server) drainAndStop() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && Sugar != nil {
		Sugar.Errorf("HTTP server shutdown error: %v", err)
	}
	if srv.onShutdown != nil {
		srv.onShutdown()
	}
	close(srv.shutdownChan)
}

// startReplacement forks the current binary with the listener fd attached so
// the new process serves without dropping the port.
func (srv *Server) startReplacement() (int, error) {
	tcpLn, ok := srv.listener.(*net.TCPListener)
	if !ok {
		return 0, fmt.Errorf("listener is not *net.TCPListener")
	}
	file, err := tcpLn.File()
	if err != nil {
		return 0, fmt.Errorf("get listener file: %w", err)
	}

	envs := []string{gracefulEnvironKey + "=1"}
	for _, e := range os.Environ() {
		if e != gracefulEnvironKey+"=1" {
			envs = append(envs, e)
		}
	}

	attr := &syscall.ProcAttr{
		Env:   envs,
		Files: []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd(), file.Fd()},
	}
	pid, err := syscall.ForkExec(os.Args[0], os.Args, attr)
	if err != nil {
		return 0, fmt.Errorf("forkexec: %w", err)
	}
	return pid, nil
}

// GraceServer starts an HTTP server with graceful shutdown/restart, running
// onShutdown after requests drain.
func GraceServer(addr string, handler http.Handler, onShutdown func()) error {
	return NewServer(addr, handler, onShutdown).ListenAndServe()
}
