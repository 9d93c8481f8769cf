package main

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/SanjoDeundiak/process-probe/pkg/lib/config"
	"github.com/SanjoDeundiak/process-probe/pkg/lib/probe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const metricsReadHeaderTimeout = 10 * time.Second

// GRPCServer bundles the gRPC listener and, optionally, the metrics endpoint.
type GRPCServer struct {
	lis net.Listener
	s   *grpc.Server

	metricsLis net.Listener
	metrics    *http.Server
}

// NewGRPCServer registers the probe health service and binds the configured
// addresses. With complete TLS material the server requires mTLS and a SPIFFE
// client identity; without any it serves plaintext.
func NewGRPCServer(cfg *config.Config, launcher probe.Launcher) (*GRPCServer, error) {
	if err := cfg.ValidateTLS(); err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := probe.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	p := probe.New(launcher, probe.Options{Metrics: metrics})

	var opts []grpc.ServerOption
	if cfg.TLSEnabled() {
		creds, err := serverCredentials(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			grpc.Creds(creds),
			grpc.UnaryInterceptor(requireClientIDUnary),
			grpc.StreamInterceptor(requireClientIDStream),
		)
	} else {
		logger.Warn("TLS is not configured; serving plaintext")
	}

	lis, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	s := grpc.NewServer(opts...)
	grpc_health_v1.RegisterHealthServer(s, NewProbeHealthServer(p))

	srv := &GRPCServer{lis: lis, s: s}

	if cfg.MetricsAddress != "" {
		metricsLis, err := net.Listen("tcp", cfg.MetricsAddress)
		if err != nil {
			_ = lis.Close()
			return nil, fmt.Errorf("failed to listen for metrics: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv.metricsLis = metricsLis
		srv.metrics = &http.Server{Handler: mux, ReadHeaderTimeout: metricsReadHeaderTimeout}
	}

	return srv, nil
}

func serverCredentials(cfg *config.Config) (credentials.TransportCredentials, error) {
	cert, err := tls.X509KeyPair([]byte(cfg.TLSCert), []byte(cfg.TLSKey))
	if err != nil {
		return nil, fmt.Errorf("failed to load server key pair: %w", err)
	}

	caPool := x509.NewCertPool()
	if ok := caPool.AppendCertsFromPEM([]byte(cfg.CATLSCert)); !ok {
		return nil, fmt.Errorf("failed to append CA certificate to pool")
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientCAs:    caPool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		MinVersion:   tls.VersionTLS13,
	}), nil
}

// Serve starts the metrics endpoint, if any, and serves gRPC until Stop.
func (g *GRPCServer) Serve() error {
	if g.metrics != nil {
		go func() {
			if err := g.metrics.Serve(g.metricsLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("Metrics server failed")
			}
		}()
	}
	return g.s.Serve(g.lis)
}

// Addr returns the network address the gRPC server is bound to.
func (g *GRPCServer) Addr() net.Addr { return g.lis.Addr() }

// MetricsAddr returns the metrics endpoint address, or nil when disabled.
func (g *GRPCServer) MetricsAddr() net.Addr {
	if g.metricsLis == nil {
		return nil
	}
	return g.metricsLis.Addr()
}

// Stop gracefully stops both servers.
func (g *GRPCServer) Stop() {
	g.s.GracefulStop()
	_ = g.lis.Close()
	if g.metrics != nil {
		_ = g.metrics.Close()
	}
}
