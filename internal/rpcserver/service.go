package rpcserver

import (
	"context"

	"github.com/golang/protobuf/ptypes/any"
	"google.golang.org/grpc"
)

// CompileServer is the service a gRPC server registers. Its single method
// takes and returns the opaque Any wire message (messages.go); handlers
// unpack/pack CompileRequest/CompileResponse themselves.
type CompileServer interface {
	Compile(context.Context, *any.Any) (*any.Any, error)
}

// compileServiceDesc is the hand-written equivalent of what
// protoc-gen-go-grpc would generate from a `service Compile { rpc
// Compile(google.protobuf.Any) returns (google.protobuf.Any); }`
// definition — there being no .proto file to run protoc against, the
// ServiceDesc/client stub below is written directly against grpc-go's
// public registration API, which is the same mechanical wiring the
// generator itself emits.
var compileServiceDesc = grpc.ServiceDesc{
	ServiceName: "gqlcompiler.rpcserver.Compile",
	HandlerType: (*CompileServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Compile",
			Handler:    compileHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpcserver.proto",
}

func compileHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(any.Any)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CompileServer).Compile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/gqlcompiler.rpcserver.Compile/Compile",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CompileServer).Compile(ctx, req.(*any.Any))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterCompileServer registers srv on s, mirroring the generated
// RegisterXxxServer function's signature.
func RegisterCompileServer(s grpc.ServiceRegistrar, srv CompileServer) {
	s.RegisterService(&compileServiceDesc, srv)
}

// CompileClient is the generated-style client stub.
type CompileClient interface {
	Compile(ctx context.Context, in *any.Any, opts ...grpc.CallOption) (*any.Any, error)
}

type compileClient struct {
	cc grpc.ClientConnInterface
}

// NewCompileClient wraps a ClientConn, mirroring the generated
// NewXxxClient constructor.
func NewCompileClient(cc grpc.ClientConnInterface) CompileClient {
	return &compileClient{cc: cc}
}

func (c *compileClient) Compile(ctx context.Context, in *any.Any, opts ...grpc.CallOption) (*any.Any, error) {
	out := new(any.Any)
	err := c.cc.Invoke(ctx, "/gqlcompiler.rpcserver.Compile/Compile", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
