package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"time"

	grpc3 "github.com/mama165/sdk-go/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/v1"
)

// ServiceName health entry covering uploads, merges and streaming.
const ServiceName = "vaultcast.Media"

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck interface {
	IsReady(ctx context.Context) error
}

// OpsServer carries grpc.health.v1 on the operations port.
// Run refreshes the serving status from the readiness checks.
type OpsServer struct {
	server       *grpc.Server
	health       *health.Server
	checks       []ReadinessCheck
	interval     time.Duration
	checkTimeout time.Duration
	log          *slog.Logger
}

func NewOpsServer(log *slog.Logger, interval time.Duration, checks ...ReadinessCheck) *OpsServer {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(grpc3.UnaryLoggingInterceptor(log)))
	hs := health.NewServer()
	// start pessimistic until the first round of checks
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return &OpsServer{
		server:       s,
		health:       hs,
		checks:       checks,
		interval:     interval,
		checkTimeout: 500 * time.Millisecond,
		log:          log,
	}
}

func (o *OpsServer) Serve(lis net.Listener) error {
	o.log.Info("Starting ops gRPC server", "address", lis.Addr().String())
	for serviceName := range o.server.GetServiceInfo() {
		o.log.Debug("gRPC exposed services", "name", serviceName)
	}
	if err := o.server.Serve(lis); err != nil && !stderrors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (o *OpsServer) Run(ctx context.Context) error {
	o.Refresh(ctx)
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			o.Refresh(ctx)
		}
	}
}

// Refresh runs every check once and publishes the combined status.
func (o *OpsServer) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	for _, c := range o.checks {
		cctx, cancel := context.WithTimeout(ctx, o.checkTimeout)
		err := c.IsReady(cctx)
		cancel()
		if err != nil {
			o.log.Warn("Readiness check failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
			break
		}
	}
	o.health.SetServingStatus("", status)
	o.health.SetServingStatus(ServiceName, status)
	return status
}

// Shutdown flips every service to NOT_SERVING and waits for in-flight RPCs.
func (o *OpsServer) Shutdown() {
	o.health.Shutdown()
	o.server.GracefulStop()
}
