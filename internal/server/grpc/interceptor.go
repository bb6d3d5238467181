package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// authorizationKey is the metadata key carrying "Bearer <token>". gRPC
// lower-cases metadata keys.
const authorizationKey = "authorization"

// publicMethods skip authentication. Health/List enumerates the registered
// services and stays behind a bearer token.
var publicMethods = map[string]bool{
	healthpb.Health_Check_FullMethodName: true,
}

// accessTokenInterceptor authenticates every unary call except the public
// ones and attaches the identity to the handler context.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(authorizationKey); len(values) > 0 {
			header = values[0]
		}
	}

	identity, err := s.guard.Authenticate(ctx, header)
	if err != nil {
		if errors.Is(err, common.ErrRejected) {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return handler(auth.WithIdentity(ctx, identity), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Debug(ctx, "grpc call",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}
