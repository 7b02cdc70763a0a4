package configs

import (
	"github.com/shopspring/decimal"
)

type Config struct {
	// 模拟盘参数
	Paper PaperConfig `json:"paper" yaml:"paper"`

	Database Database `json:"database" yaml:"database"`

	// 交易所配置
	ExchangeConfig ExchangeConfig `json:"exchange_config" yaml:"exchange_config"`

	// 复盘助手配置
	AdvisorConfig AdvisorConfig `json:"advisor_config" yaml:"advisor_config"`

	Proxy string `json:"proxy" yaml:"proxy"`
}

type PaperConfig struct {
	StartingBalance decimal.Decimal            `json:"starting_balance" yaml:"starting_balance"` // 初始资金
	FallbackPrices  map[string]decimal.Decimal `json:"fallback_prices" yaml:"fallback_prices"`   // 静态价格表
	DefaultPrice    decimal.Decimal            `json:"default_price" yaml:"default_price"`       // 兜底价格
	OracleBaseURL   string                     `json:"oracle_base_url" yaml:"oracle_base_url"`   // 行情接口地址
	OracleTimeout   string                     `json:"oracle_timeout" yaml:"oracle_timeout"`     // 行情请求超时
}

type Database struct {
	ConnStr string `json:"conn_str" yaml:"conn_str"` // 数据库连接字符串
}

type ExchangeConfig struct {
	Debug     bool   `json:"debug" yaml:"debug"`
	APIKey    string `json:"api_key" yaml:"api_key"`       // 交易所API密钥
	SecretKey string `json:"secret_key" yaml:"secret_key"` // 交易所密钥
}

type AdvisorConfig struct {
	APIKey    string `json:"api_key" yaml:"api_key"`       // AI服务API密钥
	ModelType string `json:"model_type" yaml:"model_type"` // AI模型类型
	BaseURL   string `json:"base_url" yaml:"base_url"`     // OpenAI兼容接口地址
}

// SetDefaults fills in the simulation defaults for anything the config file
// left unset.
func (c *Config) SetDefaults() {
	if c.Paper.StartingBalance.IsZero() {
		c.Paper.StartingBalance = decimal.NewFromInt(10000)
	}
	if c.Paper.DefaultPrice.IsZero() {
		c.Paper.DefaultPrice = decimal.NewFromInt(1000)
	}
	if c.Paper.FallbackPrices == nil {
		c.Paper.FallbackPrices = map[string]decimal.Decimal{
			"BTCUSDT": decimal.NewFromInt(43000),
			"ETHUSDT": decimal.NewFromInt(2500),
			"BNBUSDT": decimal.NewFromInt(300),
		}
	}
}
