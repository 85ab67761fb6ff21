package rpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/Xushengqwer/content_service/service"
)

const (
	ServiceName         = "civicconnect.ContentUpdater"
	UpdateSummaryMethod = "/civicconnect.ContentUpdater/UpdateSummary"

	discardedMessage = "post not found, summary discarded"
	appliedMessage   = "summary updated"
)

type UpdateSummaryRequest struct {
	PostID      uint64 `json:"post_id"`
	SummaryText string `json:"summary_text"`
}

type UpdateSummaryReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContentUpdaterServer 是 ContentUpdater 服务的服务端接口
type ContentUpdaterServer interface {
	UpdateSummary(ctx context.Context, req *UpdateSummaryRequest) (*UpdateSummaryReply, error)
}

// ContentUpdaterServiceDesc 描述 ContentUpdater 服务，供 grpc.Server.RegisterService 使用
var ContentUpdaterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ContentUpdaterServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "UpdateSummary",
			Handler:    updateSummaryHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "summary.proto",
}

func updateSummaryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateSummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ContentUpdaterServer).UpdateSummary(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UpdateSummaryMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ContentUpdaterServer).UpdateSummary(ctx, req.(*UpdateSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SummaryApplier 把摘要写入帖子记录
type SummaryApplier interface {
	ApplySummary(ctx context.Context, postID uint64, text string) (service.SummaryOutcome, error)
}

// ContentUpdater 是 ContentUpdaterServer 的实现。
// 它从不返回 gRPC 错误，结果全部体现在 reply 中。
type ContentUpdater struct {
	applier SummaryApplier
	logger  *zap.Logger
}

func NewContentUpdater(applier SummaryApplier, logger *zap.Logger) *ContentUpdater {
	return &ContentUpdater{applier: applier, logger: logger}
}

func (u *ContentUpdater) UpdateSummary(ctx context.Context, req *UpdateSummaryRequest) (*UpdateSummaryReply, error) {
	outcome, err := u.applier.ApplySummary(ctx, req.PostID, req.SummaryText)
	if err != nil {
		u.logger.Error("回写帖子摘要失败", zap.Uint64("postID", req.PostID), zap.Error(err))
		return &UpdateSummaryReply{Success: false, Message: err.Error()}, nil
	}
	if outcome == service.SummaryDiscarded {
		u.logger.Warn("帖子不存在，丢弃摘要", zap.Uint64("postID", req.PostID))
		return &UpdateSummaryReply{Success: true, Message: discardedMessage}, nil
	}
	u.logger.Info("帖子摘要已更新", zap.Uint64("postID", req.PostID))
	return &UpdateSummaryReply{Success: true, Message: appliedMessage}, nil
}
