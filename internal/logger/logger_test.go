package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_ChainsLevelMethods(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Get().Warn().Str("platform", "meetup").Msg("token rejected")

	out := buf.String()
	assert.Contains(t, out, "token rejected")
	assert.Contains(t, out, "meetup")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	defer SetLevel("info")
	SetLevel("warn")
	Get().Info().Msg("hidden")
	Get().Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestSetLevel_UnknownFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	defer SetLevel("info")
	SetLevel("shouting")
	Get().Debug().Msg("hidden")
	Get().Info().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}
