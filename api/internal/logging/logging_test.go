package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestID(ctx))

	ctx = WithRequestID(context.Background(), "  ")
	_, err := uuid.Parse(RequestID(ctx))
	require.NoError(t, err)

	assert.Empty(t, RequestID(context.Background()))
}

func TestFromContext_TagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Setup("debug", &buf)
	t.Cleanup(func() { Setup("info", nil) })

	FromContext(WithRequestID(context.Background(), "req-1")).Info("hello")

	assert.Contains(t, buf.String(), "request_id=req-1")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetup_UnknownLevel(t *testing.T) {
	Setup("chatty", &bytes.Buffer{})
	t.Cleanup(func() { Setup("info", nil) })
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
