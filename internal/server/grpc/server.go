// Package grpc runs the public gRPC endpoint and the authentication
// checkpoint every protected method passes through. Resource services
// (locations, facts, tags, friendships) register onto this server and read
// the authenticated user from the request context.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/andrejsk/placemark/internal/logging"
	"github.com/andrejsk/placemark/internal/server/models"
	"github.com/andrejsk/placemark/internal/server/services"
)

// IdentityResolver turns a bearer token into the authenticated user.
// *services.UserService is the production implementation.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type GRPCServer struct {
	address  string
	resolver IdentityResolver
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us *services.UserService) (*GRPCServer, error) {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		resolver: us,
	}, nil
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	// creates gRPC server with the authentication checkpoint
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.authInterceptor))

	// standard health service, exempt from authentication
	healthpb.RegisterHealthServer(srv, health.NewServer())

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
