package logging

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFromContextFallsBackToStandardLogger(t *testing.T) {
	entry := FromContext(context.Background())
	assert.Equal(t, logrus.StandardLogger(), entry.Logger)
}

func TestContextRoundTrip(t *testing.T) {
	entry := logrus.WithField("correlation_id", "abc")
	ctx := ToContext(context.Background(), entry)
	ctx = ContextWithCorrelationID(ctx, "abc")

	assert.Same(t, entry, FromContext(ctx))
	assert.Equal(t, "abc", CorrelationIDFromContext(ctx))
	assert.Equal(t, "", CorrelationIDFromContext(context.Background()))
}

func TestInitUnknownLevelDefaultsToInfo(t *testing.T) {
	Init("loud", "dev")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	Init("debug", "prod")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	Init("info", "dev")
}
