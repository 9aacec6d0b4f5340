package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultSMTPPort    = 587
	ImplicitTLSPort    = 465
	DefaultSenderEmail = "no-reply@seusite.com"
)

var ErrSMTPIncomplete = errors.New("smtp credentials incomplete")

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		Route           string `env:"ROUTE" envDefault:"/api/send-reset-pin"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	CORS struct {
		Origin string `env:"ORIGIN" envDefault:"*"`
	} `envPrefix:"CORS_"`
}

// SMTP 不做启动时缓存，每次请求都重新读取
type SMTP struct {
	Host        string `env:"SMTP_HOST"`
	Port        string `env:"SMTP_PORT" envDefault:"587"`
	User        string `env:"SMTP_USER"`
	Pass        string `env:"SMTP_PASS"`
	SenderEmail string `env:"SENDER_EMAIL" envDefault:"no-reply@seusite.com"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, firstError(err)
	}

	return cfg, nil
}

func LoadSMTP() (*SMTP, error) {
	smtp := &SMTP{}
	if err := env.Parse(smtp); err != nil {
		return nil, firstError(err)
	}

	// envDefault 只在变量不存在时生效，显式设置为空字符串时也要回退
	if smtp.SenderEmail == "" {
		smtp.SenderEmail = DefaultSenderEmail
	}

	return smtp, nil
}

// Validate 检查发信所必需的 host、user、pass 是否都已配置
func (s *SMTP) Validate() error {
	var missing []string
	if s.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if s.User == "" {
		missing = append(missing, "SMTP_USER")
	}
	if s.Pass == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSMTPIncomplete, strings.Join(missing, ", "))
	}

	return nil
}

// ResolvedPort 取开头的数字部分作为端口（"465abc" 视为 465），
// 没有数字或超出范围时使用 587
func (s *SMTP) ResolvedPort() int {
	raw := strings.TrimPrefix(strings.TrimSpace(s.Port), "+")
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	port, err := strconv.Atoi(raw[:end])
	if err != nil || port <= 0 || port > 65535 {
		return DefaultSMTPPort
	}

	return port
}

// Secure 当且仅当端口为 465 时使用隐式 TLS
func (s *SMTP) Secure() bool {
	return s.ResolvedPort() == ImplicitTLSPort
}

func firstError(err error) error {
	aggErr := env.AggregateError{}
	if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
		// 只返回第一个错误使得日志更清晰
		return aggErr.Errors[0]
	}

	return err
}
