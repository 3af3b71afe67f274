package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const authorizationHeader = common.AuthorizationHeaderName

var protectedMethods = map[string]bool{
	methodRefresh: true,
	methodWhoAmI:  true,
}

// authInterceptor resolves the caller for protected methods and stores the
// user in the context.
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(authorizationHeader); len(values) > 0 {
			header = values[0]
		}
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	user, err := s.resolver.Resolve(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			return nil, status.Error(codes.Unauthenticated, "could not validate credentials")
		}
		s.logger.Error(ctx, "resolve identity", "method", info.FullMethod, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return handler(authz.WithUser(ctx, user), req)
}
