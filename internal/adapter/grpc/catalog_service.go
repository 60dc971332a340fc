package grpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"course-service/internal/usecase/category"
	"course-service/internal/usecase/user"
	pkgerrors "course-service/pkg/errors"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "course.v1.CatalogService"

// CatalogServer is the read API over users and categories. Messages are protobuf
// well-known types, so no generated code is needed on either side.
type CatalogServer interface {
	GetUser(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	ListUsers(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetCategory(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	ListCategories(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
}

// CatalogServiceDesc describes CatalogServer for grpc.Server.RegisterService.
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetUser",
			Handler: unary("GetUser", func(s CatalogServer, ctx context.Context, in *wrapperspb.Int64Value) (any, error) {
				return s.GetUser(ctx, in)
			}),
		},
		{
			MethodName: "ListUsers",
			Handler: unary("ListUsers", func(s CatalogServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.ListUsers(ctx, in)
			}),
		},
		{
			MethodName: "GetCategory",
			Handler: unary("GetCategory", func(s CatalogServer, ctx context.Context, in *wrapperspb.Int64Value) (any, error) {
				return s.GetCategory(ctx, in)
			}),
		},
		{
			MethodName: "ListCategories",
			Handler: unary("ListCategories", func(s CatalogServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.ListCategories(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "course/v1/catalog.proto",
}

// FullMethod returns the full gRPC method name for method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unary adapts a typed call into a grpc.MethodHandler, running the interceptor chain.
func unary[Req any](method string, call func(CatalogServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RegisterCatalogServer registers srv on s.
func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

// CatalogService implements CatalogServer on top of the usecases.
type CatalogService struct {
	users      user.Service
	categories category.Service
	log        *zap.Logger
}

// NewCatalogService creates a new gRPC catalog service.
func NewCatalogService(users user.Service, categories category.Service, log *zap.Logger) *CatalogService {
	return &CatalogService{users: users, categories: categories, log: log}
}

// GetUser handles gRPC GetUser request
func (s *CatalogService) GetUser(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	u, err := s.users.GetUser(ctx, user.GetUserRequest{ID: req.GetValue()})
	if err != nil {
		return nil, err
	}
	return userStruct(u)
}

// ListUsers handles gRPC ListUsers request
func (s *CatalogService) ListUsers(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	resp, err := s.users.ListUsers(ctx, user.ListUsersRequest{})
	if err != nil {
		return nil, err
	}

	values := make([]*structpb.Value, len(resp.Users))
	for i := range resp.Users {
		st, err := userStruct(&resp.Users[i])
		if err != nil {
			return nil, err
		}
		values[i] = structpb.NewStructValue(st)
	}
	return &structpb.ListValue{Values: values}, nil
}

// GetCategory handles gRPC GetCategory request
func (s *CatalogService) GetCategory(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	c, err := s.categories.GetCategory(ctx, req.GetValue())
	if err != nil {
		return nil, err
	}
	return categoryStruct(c)
}

// ListCategories handles gRPC ListCategories request
func (s *CatalogService) ListCategories(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]*structpb.Value, len(categories))
	for i := range categories {
		st, err := categoryStruct(&categories[i])
		if err != nil {
			return nil, err
		}
		values[i] = structpb.NewStructValue(st)
	}
	return &structpb.ListValue{Values: values}, nil
}

// Numbers travel as JSON numbers (float64); ids stay exact below 2^53.
func userStruct(u *user.User) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
	})
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to encode user", err)
	}
	return st, nil
}

func categoryStruct(c *category.Category) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(map[string]any{
		"id":   c.ID,
		"name": c.Name,
	})
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to encode category", err)
	}
	return st, nil
}

// CatalogClient calls CatalogService over a client connection.
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogClient creates a client for CatalogService.
func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

// GetUser fetches one user.
func (c *CatalogClient) GetUser(ctx context.Context, id int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod("GetUser"), wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers fetches all users.
func (c *CatalogClient) ListUsers(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FullMethod("ListUsers"), &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCategory fetches one category.
func (c *CatalogClient) GetCategory(ctx context.Context, id int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod("GetCategory"), wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategories fetches all categories.
func (c *CatalogClient) ListCategories(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FullMethod("ListCategories"), &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
