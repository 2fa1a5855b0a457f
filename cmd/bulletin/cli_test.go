package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/dailybulletin/bulletin/cmd/bulletin"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"render", "capture"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "render")
	assert.Contains(t, stdout.String(), "capture")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_RejectsUnknownEngine(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"render", "https://example.com", "--engine", "regex"}, stdout, stderr)
	require.Error(t, err)
}

// articleHTML is a page with enough body text to pass readability's scorer
// and the extraction quality gate.
func articleHTML() string {
	para := "<p>The harbor commission voted on Tuesday to extend the ferry schedule through the winter months, citing steady ridership and requests from commuters on the outer islands who depend on the service.</p>"
	return `<!DOCTYPE html>
<html><head><title>Ferry Schedule Extended</title></head>
<body>
<nav>Home | News | Sports</nav>
<article>
<h1>Ferry Schedule Extended</h1>` +
		strings.Repeat(para, 8) +
		`</article>
<footer>Copyright</footer>
</body></html>`
}

func TestMain_Run_RenderPDF(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML()))
	}))
	defer srv.Close()

	m := main.NewMain()
	m.OutDir = t.TempDir()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"render", srv.URL}, stdout, stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())

	out := filepath.Join(m.OutDir, "ferry-schedule-extended.pdf")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Contains(t, stdout.String(), "ferry-schedule-extended.pdf")
	assert.Contains(t, stdout.String(), "pages")
}

func TestMain_Run_RenderMarkdown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML()))
	}))
	defer srv.Close()

	m := main.NewMain()
	m.OutDir = t.TempDir()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	out := filepath.Join(m.OutDir, "story.md")
	err := m.Run(context.Background(), []string{"render", srv.URL, "--format", "md", "--out", out}, stdout, stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Ferry Schedule Extended"))
	assert.Contains(t, string(data), "harbor commission")
}

func TestMain_Run_RenderUnreachableServer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	m := main.NewMain()
	m.OutDir = t.TempDir()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"render", srv.URL}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "error:")
}
