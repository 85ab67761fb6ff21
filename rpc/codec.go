// Package rpc 实现摘要回调 RPC：worker 通过 civicconnect.ContentUpdater/UpdateSummary
// 把生成好的摘要写回内容服务。消息以 JSON 编码，content-subtype 为 "json"。
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName 是客户端需要通过 grpc.CallContentSubtype 声明的编码名
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
