package config

// Config 配置主体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	DB         DBConfig         `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logstash   LogstashConfig   `mapstructure:"logstash"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	I18n       I18nConfig       `mapstructure:"i18n"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Worker     WorkerConfig     `mapstructure:"worker"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// LLMConfig AI能力配置，Enabled=false 时审核直接放行、翻译跳过
type LLMConfig struct {
	Enabled     bool             `mapstructure:"enabled"`
	URL         string           `mapstructure:"url"`
	ApiKey      string           `mapstructure:"api_key"`
	TextModel   string           `mapstructure:"text_model"`
	DailyLimit  int64            `mapstructure:"daily_limit"`
	PromptsPath PromptPathConfig `mapstructure:"prompts_path"`
}

type PromptPathConfig struct {
	Moderation  string `mapstructure:"moderation"`
	Translation string `mapstructure:"translation"`
}

// ModerationConfig 审核阈值，review < reject
type ModerationConfig struct {
	ReviewThreshold int `mapstructure:"review_threshold"`
	RejectThreshold int `mapstructure:"reject_threshold"`
}

// I18nConfig 多语言配置，列表顺序即展示顺序，第一个语言作为兜底
type I18nConfig struct {
	SupportedLanguages []string `mapstructure:"supported_languages"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// WorkerConfig 后台任务执行器配置
type WorkerConfig struct {
	QueueSize int `mapstructure:"queue_size"`
	Workers   int `mapstructure:"workers"`
}
