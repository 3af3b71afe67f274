package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	username := fields["username"].GetStringValue()
	password := fields["password"].GetStringValue()
	if username == "" || password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}

	token, err := s.identity.Login(ctx, username, password)
	if err != nil {
		return nil, s.toStatus(ctx, "login", err)
	}
	return tokenStruct(token)
}

func (s *GRPCServer) Refresh(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	token, err := s.identity.Refresh(ctx, authz.UserFrom(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, "refresh", err)
	}
	return tokenStruct(token)
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	u := authz.UserFrom(ctx)
	if u == nil {
		return nil, status.Error(codes.Unauthenticated, "could not validate credentials")
	}
	return structpb.NewStruct(map[string]any{
		"id":           u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"is_superuser": u.IsSuperuser,
	})
}

func tokenStruct(t *services.Token) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"access_token": t.AccessToken,
		"token_type":   t.TokenType,
	})
}

func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "could not validate credentials")
	case errors.Is(err, common.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, "too many attempts")
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error(ctx, "request failed", "op", op, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
