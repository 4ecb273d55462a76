package enhancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanty-ai/quanty/internal/nlp"
	"github.com/quanty-ai/quanty/internal/platform"
)

func TestEnhanceTagOrder(t *testing.T) {
	e := New(nlp.New())

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain low complexity",
			text: "hello there",
			want: "[BEGINNER] hello there",
		},
		{
			name: "software context",
			text: "open powershell",
			want: "[BEGINNER] [WINDOWS CONTEXT] open powershell",
		},
		{
			name: "tutorial wraps software",
			text: "how to use ubuntu terminal",
			want: "[BEGINNER] [TUTORIAL REQUEST] [LINUX CONTEXT] how to use ubuntu terminal",
		},
		{
			name: "troubleshoot",
			text: "error in sudo",
			want: "[BEGINNER] [TROUBLESHOOTING] [LINUX CONTEXT] error in sudo",
		},
		{
			name: "medium complexity has no level tag",
			text: "an algorithm, a framework and an architecture",
			want: "an algorithm, a framework and an architecture",
		},
		{
			name: "high complexity",
			text: "algorithm implementation architecture optimization",
			want: "[ADVANCED] algorithm implementation architecture optimization",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Enhance(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.text, res.Original)
			assert.Equal(t, tt.want, res.Enhanced)
		})
	}
}

func TestEnhanceForPlatform(t *testing.T) {
	e := New(nlp.New())

	res, err := e.EnhanceFor("hello there", platform.Linux)
	require.NoError(t, err)
	assert.Equal(t, "[LINUX] [BEGINNER] hello there", res.Enhanced)

	res, err = e.EnhanceFor("hello there", platform.Unknown)
	require.NoError(t, err)
	assert.Equal(t, "[BEGINNER] hello there", res.Enhanced)
}

func TestEnhanceInvalidInput(t *testing.T) {
	e := New(nlp.New())

	_, err := e.Enhance("bad \xff bytes")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEnhanceIsPure(t *testing.T) {
	e := New(nlp.New())

	a, err := e.Enhance("how to install docker on linux")
	require.NoError(t, err)
	b, err := e.Enhance("how to install docker on linux")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
