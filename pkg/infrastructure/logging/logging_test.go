package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("cell", "CELL_A").Debug("ranked")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ranked", line["msg"])
	assert.Equal(t, "CELL_A", line["cell"])
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")

	_, err = New(Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "text", Output: &buf})
	require.NoError(t, err)

	ctx := WithLogger(context.Background(), logger.WithField("session", "s1"))
	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "session=s1")

	buf.Reset()
	ctx = WithLogger(context.Background(), logger)
	FromContext(ctx).Info("plain")
	assert.Contains(t, buf.String(), "plain")

	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info("dropped")
	})
}
