package rpc

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// Server 承载摘要回调 RPC
type Server struct {
	grpcServer *grpc.Server
	logger     *zap.Logger
}

func NewServer(updater ContentUpdaterServer, logger *zap.Logger) *Server {
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))
	grpcServer.RegisterService(&ContentUpdaterServiceDesc, updater)
	return &Server{grpcServer: grpcServer, logger: logger}
}

// Serve 在 lis 上阻塞服务，直到 Stop 被调用
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC 服务开始监听", zap.String("addr", lis.Addr().String()))
	return s.grpcServer.Serve(lis)
}

// Stop 优雅关闭，ctx 到期后强制关闭
func (s *Server) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("gRPC 优雅关闭超时，强制停止")
		s.grpcServer.Stop()
	}
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Debug("gRPC 请求完成",
			zap.String("method", info.FullMethod),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return resp, err
	}
}
