package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config 全局配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Business BusinessConfig `mapstructure:"business"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type MySQLConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers []string         `mapstructure:"brokers"`
	Topic   KafkaTopicConfig `mapstructure:"topic"`
}

type KafkaTopicConfig struct {
	AuditEvents string `mapstructure:"audit_events"`
}

// GeminiConfig 文本生成服务配置
// API Key 从环境变量 GEMINI_API_KEY 读取，不写进配置文件
type GeminiConfig struct {
	Model      string `mapstructure:"model"`
	TTSModel   string `mapstructure:"tts_model"`
	TTSVoice   string `mapstructure:"tts_voice"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// RulesConfig 风险检测规则参数
//
// 【设计思考】为什么不在代码里写死？
// 凭证限额（土耳其税法 tevsik 下限 7000 TL）和科目编码（现金 100、
// 股东往来 131）都是单一税域的规定，换税域只需要改配置文件。
type RulesConfig struct {
	CashAccount         string  `mapstructure:"cash_account"`          // 现金科目编码
	RelatedPartyAccount string  `mapstructure:"related_party_account"` // 股东/关联方往来科目编码
	CashThreshold       float64 `mapstructure:"cash_threshold"`        // 现金凭证限额（超过必须走银行渠道）
	LargeCashThreshold  float64 `mapstructure:"large_cash_threshold"`  // 大额现金预警线
}

type BusinessConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"` // 上传文件大小上限
	MaxRetryCount  int   `mapstructure:"max_retry_count"`  // outbox 消息最大重试次数
}

var GlobalConfig *Config

// LoadConfig 加载配置文件
func LoadConfig(configPath string) *Config {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("读取配置文件失败: %v", err)
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	GlobalConfig = config
	return config
}
