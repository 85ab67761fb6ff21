package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Xushengqwer/content_service/models/events"
)

// Client 是 worker 侧的摘要回调客户端
type Client struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

// NewClient 创建到 target 的连接，连接本身是惰性的，首次调用时才拨号。
func NewClient(target string, timeout time.Duration, opts ...grpc.DialOption) (*Client, error) {
	if target == "" {
		return nil, errors.New("回调 RPC target 不能为空")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("创建回调 RPC 连接失败: %w", err)
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

func (c *Client) UpdateSummary(ctx context.Context, req *UpdateSummaryRequest) (*UpdateSummaryReply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply := new(UpdateSummaryReply)
	if err := c.conn.Invoke(ctx, UpdateSummaryMethod, req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// SubmitSummary 提交摘要；服务端回复 success=false 时返回错误
func (c *Client) SubmitSummary(ctx context.Context, result events.SummaryResult) error {
	reply, err := c.UpdateSummary(ctx, &UpdateSummaryRequest{PostID: result.PostID, SummaryText: result.SummaryText})
	if err != nil {
		return err
	}
	if !reply.Success {
		return fmt.Errorf("内容服务拒绝摘要: %s", reply.Message)
	}
	return nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
