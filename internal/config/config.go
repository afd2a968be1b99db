package config

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string
	Env  string
	Host string
	Port int
}

type AuthCfg struct {
	JWTSecret string
	Issuer    string
	Audience  string
}

type LogCfg struct {
	Level string
}

type DBCfg struct {
	// postgres | sqlite
	Driver      string
	DSN         string
	MaxOpen     int
	MaxIdle     int
	AutoMigrate bool
}

type RedisCfg struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

type MQCfg struct {
	URL               string
	AuditExchange     string
	AuditRoutingKey   string
	PublishTimeoutSec int
}

type S3Cfg struct {
	Endpoint         string
	Region           string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UsePathStyle     bool
	PresignExpireSec int
	SSE              string
}

type GenerationCfg struct {
	BaseURL     string
	WebhookPath string
	TimeoutSec  int
	// upper bound for uploaded voice clips
	MaxAudioBytes int64
}

type ChatCfg struct {
	TTLSec      int
	MaxMessages int
}

type CORSCfg struct {
	AllowOrigins []string
}

type TelemetryCfg struct {
	Enabled      bool
	OtlpEndpoint string
	SampleRatio  float64
}

type Config struct {
	App        AppCfg
	Auth       AuthCfg
	Log        LogCfg
	Database   DBCfg
	Redis      RedisCfg
	RabbitMQ   MQCfg
	S3         S3Cfg
	Generation GenerationCfg
	Chat       ChatCfg
	CORS       CORSCfg
	Telemetry  TelemetryCfg
}

func Load() (*Config, error) {
	// .env is optional; real env vars keep precedence
	_ = godotenv.Load()

	base := viper.New()
	base.SetConfigName("config")
	base.SetConfigType("yaml")
	base.AddConfigPath("./configs")
	base.AddConfigPath(".")
	base.AutomaticEnv()
	base.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	base.SetEnvPrefix("APP") // e.g. APP_APP_PORT -> app.port

	setDefaults(base)

	if err := base.ReadInConfig(); err == nil {
		// expand ${ENV} once before parsing
		path := base.ConfigFileUsed()
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		expanded := os.ExpandEnv(string(raw))

		v := viper.New()
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, err
		}
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.SetEnvPrefix("APP")
		setDefaults(v)

		cfg := new(Config)
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// no file: env + defaults only
	cfg := new(Config)
	if err := base.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwtSecret is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "sketch-api")
	v.SetDefault("app.env", "debug")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("log.level", "info")
	// empty defaults register the keys so APP_* env vars reach Unmarshal
	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.accessKey", "")
	v.SetDefault("s3.secretKey", "")
	v.SetDefault("generation.baseURL", "")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlpEndpoint", "")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.maxOpen", 20)
	v.SetDefault("database.maxIdle", 5)
	v.SetDefault("database.autoMigrate", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("rabbitmq.auditExchange", "sketch.audit")
	v.SetDefault("rabbitmq.auditRoutingKey", "session.log.appended")
	v.SetDefault("rabbitmq.publishTimeoutSec", 5)
	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.usePathStyle", true)
	v.SetDefault("s3.presignExpireSec", 900)
	v.SetDefault("generation.webhookPath", "/webhook/sketch")
	v.SetDefault("generation.timeoutSec", 120)
	v.SetDefault("generation.maxAudioBytes", 25<<20)
	v.SetDefault("chat.ttlSec", 7*24*3600)
	v.SetDefault("chat.maxMessages", 200)
	v.SetDefault("cors.allowOrigins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("telemetry.sampleRatio", 1.0)
}
