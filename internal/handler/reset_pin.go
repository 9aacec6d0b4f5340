package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/domain"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/mailer"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/metrics"
)

const (
	msgResetPINSent      = "Reset PIN sent successfully."
	msgMissingFields     = "Missing email or pin in request body."
	msgMalformedBody     = "Malformed JSON request body."
	msgConfigMissing     = "Internal server error: Email service configuration missing."
	msgSendFailed        = "Error sending email. Please check server logs and SMTP configuration."
	msgUnknownSendFailed = "An unknown error occurred during email sending."
)

func (h *Handler) SendResetPIN(w http.ResponseWriter, r *http.Request) {
	req := domain.ResetRequest{}
	if err := h.readJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		slog.Warn("请求体解析失败", "path", r.URL.Path, "error", err)
		metrics.RecordOutcome(metrics.OutcomeInvalidInput)
		h.messageResponse(w, r, http.StatusBadRequest, msgMalformedBody)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		detail := err.Error()
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			detail = validationErrors[0].Translate(h.translator)
		}
		slog.Warn("请求参数无效", "path", r.URL.Path, "detail", detail)
		metrics.RecordOutcome(metrics.OutcomeInvalidInput)
		h.messageResponse(w, r, http.StatusBadRequest, msgMissingFields)
		return
	}

	// 每次请求都重新读取 SMTP 配置
	smtp, err := h.loadSMTP()
	if err == nil {
		err = smtp.Validate()
	}
	if err != nil {
		slog.Error("SMTP 配置不完整", "error", err)
		metrics.RecordOutcome(metrics.OutcomeConfigMissing)
		h.messageResponse(w, r, http.StatusInternalServerError, msgConfigMissing)
		return
	}

	transport, err := h.newTransport(mailer.NewTransportConfig(smtp))
	if err != nil {
		h.sendFailed(w, r, err)
		return
	}

	msg, err := mailer.NewResetPINMessage(smtp, &req)
	if err != nil {
		h.sendFailed(w, r, err)
		return
	}

	// 客户端断开连接时不取消正在进行的发送
	ctx := context.WithoutCancel(r.Context())
	start := time.Now()
	info, err := transport.Send(ctx, msg)
	metrics.RecordSendDuration(time.Since(start))
	if err != nil {
		h.sendFailed(w, r, err)
		return
	}

	messageID := ""
	if info != nil {
		messageID = info.MessageID
	}
	slog.Info("邮件已发送", "messageId", messageID)
	metrics.RecordOutcome(metrics.OutcomeSent)
	h.messageResponse(w, r, http.StatusOK, msgResetPINSent)
}

// sendFailed 记录完整错误，并把错误信息返回给调用方
func (h *Handler) sendFailed(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("邮件发送失败", "method", r.Method, "path", r.URL.Path, "error", err)
	metrics.RecordOutcome(metrics.OutcomeDeliveryError)

	errMsg := msgUnknownSendFailed
	if err != nil && err.Error() != "" {
		errMsg = err.Error()
	}

	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Message: msgSendFailed,
		Error:   errMsg,
	})
}
