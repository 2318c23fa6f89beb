package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	handler := NewPingHandler()

	before := time.Now().UTC().UnixMilli()
	res, err := handler.Handle(context.Background(), &PingRequest{})
	after := time.Now().UTC().UnixMilli()

	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.GreaterOrEqual(t, res.Time, before)
	assert.LessOrEqual(t, res.Time, after)
}
