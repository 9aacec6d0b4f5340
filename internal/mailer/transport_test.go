package mailer

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/config"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/domain"
	"github.com/wneessen/go-mail"
)

func TestNewTransportConfig(t *testing.T) {
	tests := []struct {
		port       string
		wantPort   int
		wantSecure bool
	}{
		{"465", 465, true},
		{" 465 ", 465, true},
		{"587", 587, false},
		{"25", 25, false},
		{"", 587, false},
		{"abc", 587, false},
		{"465abc", 465, true},
		{"+2525", 2525, false},
		{"-465", 587, false},
		{"0", 587, false},
		{"70000", 587, false},
	}

	for _, tt := range tests {
		t.Run(tt.port, func(t *testing.T) {
			cfg := NewTransportConfig(&config.SMTP{Host: "smtp.example.com", Port: tt.port, User: "u", Pass: "p"})

			assert.Equal(t, "smtp.example.com", cfg.Host)
			assert.Equal(t, tt.wantPort, cfg.Port)
			assert.Equal(t, tt.wantSecure, cfg.Secure)
			assert.Equal(t, "u", cfg.Username)
			assert.Equal(t, "p", cfg.Password)
		})
	}
}

func TestNewSMTPTransport(t *testing.T) {
	for _, secure := range []bool{true, false} {
		port := 587
		if secure {
			port = 465
		}
		transport, err := NewSMTPTransport(TransportConfig{
			Host:     "smtp.example.com",
			Port:     port,
			Secure:   secure,
			Username: "user",
			Password: "pass",
		})
		require.NoError(t, err)
		assert.NotNil(t, transport)
	}
}

func TestNewSMTPTransport_NoHost(t *testing.T) {
	_, err := NewSMTPTransport(TransportConfig{Port: 587})
	assert.Error(t, err)
}

func TestBuildMsg(t *testing.T) {
	m, err := buildMsg(&domain.MailMessage{
		From:    "no-reply@example.com",
		To:      "user@example.com",
		Subject: ResetPINSubject,
		HTML:    "<p>123456</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{ResetPINSubject}, m.GetGenHeader(mail.HeaderSubject))
	assert.NotEmpty(t, m.GetGenHeader(mail.HeaderMessageID))
	to := m.GetToString()
	require.Len(t, to, 1)
	assert.Contains(t, to[0], "user@example.com")
}

func TestBuildMsg_InvalidRecipient(t *testing.T) {
	_, err := buildMsg(&domain.MailMessage{
		From: "no-reply@example.com",
		To:   "not an address",
	})
	assert.Error(t, err)
}

func TestSMTPTransport_SendDialsOnlyConfiguredPort(t *testing.T) {
	// 先占用一个端口再释放，保证该端口上没有服务在监听
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	transport, err := NewSMTPTransport(TransportConfig{
		Host:     "127.0.0.1",
		Port:     port,
		Username: "user",
		Password: "pass",
	})
	require.NoError(t, err)

	_, err = transport.Send(context.Background(), &domain.MailMessage{
		From:    "no-reply@example.com",
		To:      "user@example.com",
		Subject: ResetPINSubject,
		HTML:    "<p>123456</p>",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("127.0.0.1:%d", port))
	assert.NotContains(t, err.Error(), "127.0.0.1:25:")
}
