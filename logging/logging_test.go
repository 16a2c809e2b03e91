package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbrconvert.log")
	require.NoError(t, SetupLogger(path, true))

	LogInfo("converted %d textures", 3)
	DebugLog("basis %s", "alpha")
	LogWarning("skipping %s", "notes.txt")
	LogError("cannot write %s", "dirt_mer.png")
	LogTextureProcessed("torch.png", true, "")
	LogTextureProcessed("broken.png", false, "invalid image")
	CloseLogger()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "converted 3 textures")
	assert.Contains(t, out, "basis alpha")
	assert.Contains(t, out, "skipping notes.txt")
	assert.Contains(t, out, "cannot write dirt_mer.png")
	assert.Contains(t, out, "PROCESSED: torch.png")
	assert.Contains(t, out, "FAILED: broken.png - Error: invalid image")
}

func TestSetupLoggerWithoutDebugDropsDebugMessages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.log")
	require.NoError(t, SetupLogger(path, false))

	DebugLog("hidden detail")
	LogInfo("visible line")
	CloseLogger()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden detail")
	assert.Contains(t, string(data), "visible line")
}

func TestSetupLoggerRejectsBadPath(t *testing.T) {
	err := SetupLogger(filepath.Join(t.TempDir(), "missing", "dir", "x.log"), false)
	assert.Error(t, err)
	CloseLogger()
}

// redirectConsole points os.Stdout and os.Stderr at temp files until restore
// is called. Loggers created in between write there.
func redirectConsole(t *testing.T) (stdout, stderr *os.File, restore func()) {
	t.Helper()
	dir := t.TempDir()
	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	stderr, err = os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)

	t.Cleanup(func() {
		stdout.Close()
		stderr.Close()
	})

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = stdout, stderr
	return stdout, stderr, func() {
		os.Stdout, os.Stderr = origOut, origErr
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSetupLoggerKeepsConsoleOutput(t *testing.T) {
	stdout, stderr, restore := redirectConsole(t)
	path := filepath.Join(t.TempDir(), "both.log")
	require.NoError(t, SetupLogger(path, true))

	LogInfo("starting conversion")
	LogWarning("slow disk")
	LogError("folder path does not exist: %s", "/nowhere")
	DebugLog("basis alpha")
	LogTextureProcessed("torch.png", true, "")

	restore()
	CloseLogger()

	console := readFile(t, stdout.Name())
	assert.Contains(t, console, "starting conversion")
	assert.Contains(t, console, "slow disk")
	assert.NotContains(t, console, "basis alpha")
	assert.NotContains(t, console, "PROCESSED")
	assert.Contains(t, readFile(t, stderr.Name()), "folder path does not exist: /nowhere")

	file := readFile(t, path)
	assert.Contains(t, file, "starting conversion")
	assert.Contains(t, file, "folder path does not exist")
	assert.Contains(t, file, "basis alpha")
	assert.Contains(t, file, "PROCESSED: torch.png")
}

func TestConsoleLoggerHidesSuccessLines(t *testing.T) {
	stdout, stderr, restore := redirectConsole(t)
	CloseLogger() // fresh console logger bound to the redirected streams

	LogTextureProcessed("torch.png", true, "")
	LogTextureProcessed("broken.png", false, "invalid image")
	LogInfo("done")

	restore()
	CloseLogger()

	console := readFile(t, stdout.Name())
	assert.NotContains(t, console, "PROCESSED")
	assert.Contains(t, console, "done")
	assert.Contains(t, readFile(t, stderr.Name()), "FAILED: broken.png - Error: invalid image")
}
