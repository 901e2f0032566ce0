package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret   string `yaml:"secret"`
	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`
	TTL      string `yaml:"ttl"`
}

type OTPConfig struct {
	TTL    string `yaml:"ttl"`
	Length int    `yaml:"length"`
}

type TwilioConfig struct {
	AccountSID   string `yaml:"account_sid"`
	AuthToken    string `yaml:"auth_token"`
	WhatsAppFrom string `yaml:"whatsapp_from"`
	SendTimeout  string `yaml:"send_timeout"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
}

type Config struct {
	Port          string
	GinMode       string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration
	OTPTTL        time.Duration
	OTPLength     int
	TwilioSID     string
	TwilioToken   string
	WhatsAppFrom  string
	SendTimeout   time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// the secrets that should not live in the file.
func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	tokenTTL, err := time.ParseDuration(configFile.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	sendTimeout, err := time.ParseDuration(configFile.Twilio.SendTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid Twilio send timeout: %w", err)
	}

	cfg := &Config{
		Port:          fmt.Sprintf("%d", configFile.App.Port),
		GinMode:       configFile.App.GinMode,
		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,
		JWTSecret:     env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:     configFile.JWT.Issuer,
		JWTAudience:   configFile.JWT.Audience,
		TokenTTL:      tokenTTL,
		OTPTTL:        otpTTL,
		OTPLength:     configFile.OTP.Length,
		TwilioSID:     env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:   env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		WhatsAppFrom:  env("TWILIO_WHATSAPP_FROM", configFile.Twilio.WhatsAppFrom),
		SendTimeout:   sendTimeout,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}
	if cfg.OTPLength <= 0 {
		cfg.OTPLength = 6
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
