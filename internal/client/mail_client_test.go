package client

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	clientmodel "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"attendance-service/internal/config"
	"attendance-service/internal/metrics"
)

func TestNewMailClient_NotConfigured(t *testing.T) {
	c := NewMailClient(config.SMTPConfig{Host: "smtp.example.com"}, "alerts@example.com", zap.NewNop(), nil)

	assert.False(t, c.IsConfigured())
	assert.NoError(t, c.Send(context.Background(), []string{"ops@example.com"}, "s", "b"))
}

func TestNewMailClient_DefaultPort(t *testing.T) {
	c := NewMailClient(config.SMTPConfig{Host: "smtp.example.com", User: "u", Pass: "p"}, "alerts@example.com", zap.NewNop(), nil)

	require.True(t, c.IsConfigured())
	sc, ok := c.(*smtpMailClient)
	require.True(t, ok)
	assert.Equal(t, defaultSMTPPort, sc.cfg.Port)
}

func TestSMTPMailClient_Send_RejectsBadInput(t *testing.T) {
	cfg := config.SMTPConfig{Host: "127.0.0.1", Port: 2525, User: "u", Pass: "p"}

	t.Run("no recipients", func(t *testing.T) {
		c := NewMailClient(cfg, "alerts@example.com", zap.NewNop(), nil)
		assert.ErrorIs(t, c.Send(context.Background(), nil, "s", "b"), ErrNoRecipients)
	})

	t.Run("invalid sender", func(t *testing.T) {
		c := NewMailClient(cfg, "not an address", zap.NewNop(), nil)
		err := c.Send(context.Background(), []string{"ops@example.com"}, "s", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid sender")
	})
}

func TestSMTPMailClient_Send_ConnectionRefused(t *testing.T) {
	// reserve a port and release it so nothing is listening
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())
	c := NewMailClient(config.SMTPConfig{Host: "127.0.0.1", Port: port, User: "u", Pass: "p"},
		"alerts@example.com", zap.NewNop(), m)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = c.Send(ctx, []string{"ops@example.com"}, "[IdleTracker] bob INACTIVE", "body")
	require.Error(t, err, "port %s has no listener", strconv.Itoa(port))

	metric := &clientmodel.Metric{}
	require.NoError(t, m.ExternalRequestsTotal.WithLabelValues("smtp", "send", "error").Write(metric))
	assert.Equal(t, 1.0, metric.Counter.GetValue())
}
