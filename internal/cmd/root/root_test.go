package root

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdRoot_Subcommands(t *testing.T) {
	cmd := NewCmdRoot()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"init", "render", "macro", "config", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestNewCmdRoot_Version(t *testing.T) {
	cmd := NewCmdRoot()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(buf.String(), "wmx version dev"))
}

func TestNewCmdRoot_RenderFromStdin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, v := range []string{"WMX_MAX_DEPTH", "WMX_SYNTAX", "WMX_FORMAT", "WMX_LOG_LEVEL", "WMX_DISABLED_MACROS"} {
		t.Setenv(v, "")
	}

	cmd := NewCmdRoot()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader("{{info}}hello{{/info}}"))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"render", "--format", "wiki", "--no-color"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "(% class=\"box infomessage\" %)(((\nhello\n)))\n", out.String())
	assert.Empty(t, errOut.String())
}
