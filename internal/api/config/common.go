package config

// Config 配置主体
type Config struct {
	Server            ServerConfig      `mapstructure:"server"`
	DB                DBConfig          `mapstructure:"database"`
	Redis             RedisConfig       `mapstructure:"redis"`
	Auth              AuthConfig        `mapstructure:"auth"`
	Challenge         ChallengeConfig   `mapstructure:"challenge"`
	RSS               RSSConfig         `mapstructure:"rss"`
	Kafka             KafkaConfig       `mapstructure:"kafka"`
	KafkaMailConsumer KafkaMailConsumer `mapstructure:"kafka_mail_consumer"`
	SMTP              SMTPConfig        `mapstructure:"smtp"`
	Logstash          LogstashConfig    `mapstructure:"logstash"`
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

// AuthConfig 登录态 JWT 配置
type AuthConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// ChallengeConfig 博客所有权挑战 Token 配置
type ChallengeConfig struct {
	Secret    string `mapstructure:"secret"`
	TTLMinute int    `mapstructure:"ttl_minute"`
}

// RSSConfig RSS 拉取配置
type RSSConfig struct {
	TimeoutSecond int `mapstructure:"timeout_second"`
	VerifyScan    int `mapstructure:"verify_scan"`
}

type KafkaConfig struct {
	Brokers      []string       `mapstructure:"brokers"`
	Sasl         SaslConfig     `mapstructure:"sasl"`
	Consumer     ConsumerConfig `mapstructure:"consumer"`
	ArticleTopic string         `mapstructure:"article_topic"`
	MailTopic    string         `mapstructure:"mail_topic"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaMailConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// SMTPConfig 邮件发送配置
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
