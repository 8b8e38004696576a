// Command gqlcheckd is the gRPC daemon wrapping the compiler facade as a
// Compile RPC (SPEC_FULL.md §6 "cmd/gqlcheckd"), for CI systems that want
// to avoid re-parsing a large federated schema on every call. Structured
// logging follows the corpus's one zap user (roderm-graphql-go-tools),
// logging each listen/accept/compile event the way that repo logs request
// lifecycle events.
package main

import (
	"context"
	"flag"
	"net"
	"time"

	"google.golang.org/grpc"

	"go.uber.org/zap"

	"github.com/shyptr/gqlcompiler/internal/config"
	"github.com/shyptr/gqlcompiler/internal/rpcserver"
)

func main() {
	configPath := flag.String("config", ".graphqlconfig.yaml", "path to .graphqlconfig.yaml")
	cacheBytes := flag.Int64("cache-bytes", 64<<20, "groupcache schema cache budget, in bytes")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", zap.Error(err))
	}

	addr := cfg.Daemon.ListenAddr
	if addr == "" {
		addr = "localhost:7777"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal("listening", zap.String("addr", addr), zap.Error(err))
	}

	srv := rpcserver.NewServer(*cacheBytes)
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(logger)))
	rpcserver.RegisterCompileServer(grpcServer, srv)

	logger.Info("gqlcheckd listening", zap.String("addr", addr))
	if err := grpcServer.Serve(lis); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Info("rpc",
			zap.String("method", info.FullMethod),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return resp, err
	}
}
