package poolctl

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	gs "github.com/dmitrijs2005/poolkeeper/internal/server/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// Identity is the token-bound part of the API, served over gRPC.
type Identity interface {
	WhoAmI(ctx context.Context, token string) (*User, error)
	Refresh(ctx context.Context, token string) (string, error)
	Close() error
}

type grpcIdentity struct {
	conn   *grpc.ClientConn
	client *gs.IdentityClient
}

// dialIdentity is a test seam.
var dialIdentity = func(addr string) (Identity, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &grpcIdentity{conn: conn, client: gs.NewIdentityClient(conn)}, nil
}

func bearer(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, common.AuthorizationHeaderName, "Bearer "+token)
}

func (g *grpcIdentity) WhoAmI(ctx context.Context, token string) (*User, error) {
	out, err := g.client.WhoAmI(bearer(ctx, token))
	if err != nil {
		return nil, err
	}
	f := out.GetFields()
	return &User{
		ID:          int64(f["id"].GetNumberValue()),
		Email:       f["email"].GetStringValue(),
		Username:    f["username"].GetStringValue(),
		IsSuperuser: f["is_superuser"].GetBoolValue(),
	}, nil
}

func (g *grpcIdentity) Refresh(ctx context.Context, token string) (string, error) {
	out, err := g.client.Refresh(bearer(ctx, token))
	if err != nil {
		return "", err
	}
	return out.GetFields()["access_token"].GetStringValue(), nil
}

func (g *grpcIdentity) Close() error {
	return g.conn.Close()
}
