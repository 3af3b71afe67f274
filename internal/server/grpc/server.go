// Package grpc serves the identity API over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/poolkeeper/internal/logging"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Identity is the part of the user service exposed over gRPC.
type Identity interface {
	Login(ctx context.Context, username, password string) (*services.Token, error)
	Refresh(ctx context.Context, actor *models.User) (*services.Token, error)
}

// IdentityResolver turns a bearer token into the acting user.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type GRPCServer struct {
	address  string
	identity Identity
	resolver IdentityResolver
	logger   logging.Logger
}

var _ IdentityServer = (*GRPCServer)(nil)

func NewGRPCServer(address string, l logging.Logger, identity Identity, resolver IdentityResolver) *GRPCServer {
	return &GRPCServer{
		address:  address,
		identity: identity,
		resolver: resolver,
		logger:   l.With("module", "grpc_server"),
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.authInterceptor))

	RegisterIdentityServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
