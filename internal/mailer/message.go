package mailer

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/config"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/domain"
)

const ResetPINSubject = "Código de Redefinição de Senha do Portfolio Admin"

//go:embed templates/*.html
var templateFS embed.FS

// PIN 按原样写入正文，这里刻意使用 text/template 而不是 html/template
var resetPINTemplate = template.Must(template.ParseFS(templateFS, "templates/reset_pin_email.html"))

type resetPINData struct {
	PIN string
}

func RenderResetPIN(pin string) (string, error) {
	var buf bytes.Buffer
	if err := resetPINTemplate.Execute(&buf, resetPINData{PIN: pin}); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// NewResetPINMessage 根据请求和 SMTP 配置构造重置 PIN 邮件
func NewResetPINMessage(smtp *config.SMTP, req *domain.ResetRequest) (*domain.MailMessage, error) {
	body, err := RenderResetPIN(req.PIN)
	if err != nil {
		return nil, err
	}

	return &domain.MailMessage{
		From:    smtp.SenderEmail,
		To:      req.Email,
		Subject: ResetPINSubject,
		HTML:    body,
	}, nil
}
