package config

// GRPCConfig 是摘要回调 RPC 服务端的监听配置
type GRPCConfig struct {
	Port string `mapstructure:"port" json:"port" yaml:"port"`
}
