package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the identity service.
const ServiceName = "poolkeeper.identity.v1.IdentityService"

const (
	methodLogin   = "/" + ServiceName + "/Login"
	methodRefresh = "/" + ServiceName + "/Refresh"
	methodWhoAmI  = "/" + ServiceName + "/WhoAmI"
)

// IdentityServer is the server side of the identity service. Messages are
// protobuf well-known types, so no generated code is needed.
type IdentityServer interface {
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Refresh(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	WhoAmI(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

var identityServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IdentityServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: loginHandler},
		{MethodName: "Refresh", Handler: refreshHandler},
		{MethodName: "WhoAmI", Handler: whoAmIHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "poolkeeper/identity/v1/identity.proto",
}

// RegisterIdentityServer attaches srv to s.
func RegisterIdentityServer(s grpc.ServiceRegistrar, srv IdentityServer) {
	s.RegisterService(&identityServiceDesc, srv)
}

func loginHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdentityServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodLogin}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(IdentityServer).Login(ctx, req.(*structpb.Struct))
	})
}

func refreshHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdentityServer).Refresh(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRefresh}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(IdentityServer).Refresh(ctx, req.(*emptypb.Empty))
	})
}

func whoAmIHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdentityServer).WhoAmI(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodWhoAmI}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(IdentityServer).WhoAmI(ctx, req.(*emptypb.Empty))
	})
}

// IdentityClient calls the identity service over an existing connection.
type IdentityClient struct {
	cc grpc.ClientConnInterface
}

func NewIdentityClient(cc grpc.ClientConnInterface) *IdentityClient {
	return &IdentityClient{cc: cc}
}

func (c *IdentityClient) Login(ctx context.Context, username, password string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{"username": username, "password": password})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodLogin, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *IdentityClient) Refresh(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodRefresh, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *IdentityClient) WhoAmI(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodWhoAmI, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
