// mail 通过与 HTTP 接口相同的组件发送一封重置 PIN 邮件，用于检查 SMTP 配置
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/config"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/domain"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/mailer"
)

func main() {
	to := flag.String("to", "", "收件人邮箱")
	pin := flag.String("pin", "", "要发送的 PIN")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *to == "" || *pin == "" {
		logger.Error("必须同时指定 -to 和 -pin")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	/**********************************************
	 * 读取 SMTP 配置
	 **********************************************/
	smtp, err := config.LoadSMTP()
	if err != nil {
		logger.Error("无法读取 SMTP 配置", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := smtp.Validate(); err != nil {
		logger.Error("SMTP 配置不完整", slog.String("error", err.Error()))
		os.Exit(1)
	}

	/**********************************************
	 * 创建邮件客户端
	 **********************************************/
	transportCfg := mailer.NewTransportConfig(smtp)
	transport, err := mailer.NewSMTPTransport(transportCfg)
	if err != nil {
		logger.Error("无法创建邮件客户端", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 构建邮件
	msg, err := mailer.NewResetPINMessage(smtp, &domain.ResetRequest{Email: *to, PIN: *pin})
	if err != nil {
		logger.Error("无法构建邮件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 发送邮件
	logger.Info("正在发送邮件...", "host", transportCfg.Host, "port", transportCfg.Port, "secure", transportCfg.Secure)
	info, err := transport.Send(context.Background(), msg)
	if err != nil {
		logger.Error("邮件发送失败", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("邮件已发送", "messageId", info.MessageID)
}
