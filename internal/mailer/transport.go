package mailer

import (
	"context"

	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/config"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/domain"
	"github.com/wneessen/go-mail"
)

type Transport interface {
	Send(ctx context.Context, msg *domain.MailMessage) (*domain.DeliveryInfo, error)
}

// TransportFactory 每次请求都会调用一次，返回全新的 Transport
type TransportFactory func(cfg TransportConfig) (Transport, error)

type TransportConfig struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
}

func NewTransportConfig(smtp *config.SMTP) TransportConfig {
	return TransportConfig{
		Host:     smtp.Host,
		Port:     smtp.ResolvedPort(),
		Secure:   smtp.Secure(),
		Username: smtp.User,
		Password: smtp.Pass,
	}
}

type SMTPTransport struct {
	client *mail.Client
}

func NewSMTPTransport(cfg TransportConfig) (Transport, error) {
	opts := []mail.Option{
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		// 非 465 端口时服务器支持 STARTTLS 就升级，不支持则明文。
		// 不能用 WithTLSPortPolicy，它会设置回退到 25 端口的重试
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	opts = append(opts, mail.WithPort(cfg.Port))

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}

	return &SMTPTransport{client: client}, nil
}

// Send 只尝试发送一次，错误原样返回以便调用方透出错误信息
func (t *SMTPTransport) Send(ctx context.Context, msg *domain.MailMessage) (*domain.DeliveryInfo, error) {
	m, err := buildMsg(msg)
	if err != nil {
		return nil, err
	}

	if err := t.client.DialAndSendWithContext(ctx, m); err != nil {
		return nil, err
	}

	info := &domain.DeliveryInfo{}
	if ids := m.GetGenHeader(mail.HeaderMessageID); len(ids) > 0 {
		info.MessageID = ids[0]
	}

	return info, nil
}

func buildMsg(msg *domain.MailMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, err
	}
	if err := m.To(msg.To); err != nil {
		return nil, err
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	m.SetMessageID()

	return m, nil
}
