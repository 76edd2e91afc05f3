package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestVerboseToggle(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(false)
	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	buf := capture(t)

	Debug("resolved %q to %q", "MCP", "MCP: Build Rich-Context AI Apps")
	Info("indexed %d chunks", 12)
	Warn("skipping %s", "notes.pdf")

	assert.Equal(t,
		"[DEBUG] resolved \"MCP\" to \"MCP: Build Rich-Context AI Apps\"\n"+
			"[INFO] indexed 12 chunks\n"+
			"[WARN] skipping notes.pdf\n",
		buf.String())
}

func TestSilentWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(false)

	Debug("hidden")
	Section("hidden")
	assert.Zero(t, buf.Len())
}

func TestSectionHeader(t *testing.T) {
	buf := capture(t)

	Section("Content Search")
	assert.Equal(t, "\n=== Content Search ===\n", buf.String())
}

func TestConcurrentUse(t *testing.T) {
	capture(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("worker %d", n)
			IsVerbose()
			SetVerbose(true)
		}(i)
	}
	wg.Wait()
}
