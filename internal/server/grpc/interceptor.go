package grpc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/andrejsk/placemark/internal/common"
	"github.com/andrejsk/placemark/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "authUser"

// openMethods lists the full method names that are served without a token.
// Everything else goes through the identity resolver.
var openMethods = map[string]struct{}{
	"/grpc.health.v1.Health/Check": {},
	"/grpc.health.v1.Health/Watch": {},
}

// authInterceptor is the per-request authentication checkpoint: it extracts
// the bearer token from the incoming metadata, resolves it to a user, and
// stores the user in the context for the handler. Any resolution failure
// stops the request before the handler runs.
func (s *GRPCServer) authInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if _, open := openMethods[info.FullMethod]; open {
		return handler(ctx, req)
	}

	token := tokenFromMetadata(ctx)
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	user, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		// The token value itself never reaches the log.
		s.logger.Warn(ctx, "request rejected", "method", info.FullMethod, "reason", reasonFor(err))
		return nil, StatusFromError(err)
	}

	return handler(context.WithValue(ctx, userKey, user), req)
}

// tokenFromMetadata pulls the access token from incoming metadata. Both the
// standard "authorization: Bearer <token>" header and the bare access_token
// key are accepted.
func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	if values := md.Get("authorization"); len(values) > 0 {
		v := values[0]
		if len(v) > 7 && strings.EqualFold(v[:7], "Bearer ") {
			return strings.TrimSpace(v[7:])
		}
	}

	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
		return values[0]
	}

	return ""
}

// UserFromContext returns the authenticated user stored by the checkpoint.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

// StatusFromError maps the service error taxonomy to gRPC status codes.
// Resource services reuse it so all methods fail consistently.
func StatusFromError(err error) error {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "token has expired")
	case errors.Is(err, common.ErrTokenMalformed),
		errors.Is(err, common.ErrTokenRevoked),
		errors.Is(err, common.ErrUnknownSubject):
		return status.Error(codes.Unauthenticated, "could not validate credentials")
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrAlreadyRevoked):
		return status.Error(codes.FailedPrecondition, "already revoked")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, "invalid argument")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// reasonFor reduces an error to a log-safe label.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return "expired"
	case errors.Is(err, common.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, common.ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, common.ErrUnknownSubject):
		return "unknown subject"
	default:
		return "error"
	}
}
