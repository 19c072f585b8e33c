package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Run("json output at the requested level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, Setup(Config{Level: "warn", JSON: true, Out: buf}))

		logrus.Info("hidden")
		logrus.WithField("method", "monte_carlo").Warn("shown")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "monte_carlo", entry["method"])
		assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	})

	t.Run("invalid level", func(t *testing.T) {
		err := Setup(Config{Level: "loud"})
		assert.Error(t, err)
	})
}
