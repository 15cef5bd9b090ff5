// Package server owns the listen/serve/shutdown lifecycle of a service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/foodtruck-labs/foodtruck/pkg/grpc"
	"github.com/foodtruck-labs/foodtruck/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

type Options struct {
	Name     string
	Addr     string
	Handler  http.Handler
	GRPCPort string // empty disables the gRPC side port
}

// Run serves HTTP on opts.Addr until ctx is done or the listener fails,
// then drains in-flight requests.
func Run(ctx context.Context, opts Options) error {
	lis, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", opts.Addr, err)
	}
	return Serve(ctx, lis, opts)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, lis net.Listener, opts Options) error {
	srv := &http.Server{
		Handler:           opts.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var gsrv *grpc.Server
	if opts.GRPCPort != "" {
		gsrv = grpc.NewServer(opts.Name)
		if err := gsrv.Start(":" + opts.GRPCPort); err != nil {
			_ = lis.Close()
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "service", opts.Name, "addr", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		gsrv.Stop()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "service", opts.Name)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	gsrv.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
