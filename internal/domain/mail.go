package domain

// ResetRequest 是重置 PIN 接口的请求体
type ResetRequest struct {
	Email string `json:"email" validate:"required"`
	PIN   string `json:"pin" validate:"required"`
}

type MailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type DeliveryInfo struct {
	MessageID string `json:"messageId"`
}
