package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sortednames/internal/model"
)

func writeNames(t *testing.T, dir string) string {
	t.Helper()
	files := map[string]string{
		"yob1995.txt": "Amy,F,30\nMary,F,60\nJoy,M,10\n",
		"yob2000.txt": "Abbey,F,20\nBob,M,80\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return filepath.Join(dir, "yob2000.txt")
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestTopCommand(t *testing.T) {
	dir := t.TempDir()
	namePath := writeNames(t, dir)

	out, _, err := runCLI(t, "top", "--config", filepath.Join(dir, "missing.toml"), "--name-path", namePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Abbey")
	assert.NotContains(t, out, "Bob")
}

func TestRootCommandPrintsTopAndChart(t *testing.T) {
	dir := t.TempDir()
	namePath := writeNames(t, dir)

	out, _, err := runCLI(t, "--config", filepath.Join(dir, "missing.toml"), "--name-path", namePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Abbey")
	assert.Contains(t, out, chartTitle)
	assert.Contains(t, out, "Labels:")
}

func TestYearsCommand(t *testing.T) {
	dir := t.TempDir()
	namePath := writeNames(t, dir)

	out, _, err := runCLI(t, "years", "--config", filepath.Join(dir, "missing.toml"), "--name-path", namePath)
	require.NoError(t, err)
	assert.Contains(t, out, "1995")
	assert.Contains(t, out, "2000")
}

func TestPlotMarkdown(t *testing.T) {
	dir := t.TempDir()
	namePath := writeNames(t, dir)

	out, _, err := runCLI(t, "plot", "--markdown", "--config", filepath.Join(dir, "missing.toml"), "--name-path", namePath)
	require.NoError(t, err)
	assert.Contains(t, out, "# ")
	assert.Contains(t, out, "Abbey")
}

func TestMissingNameFileFails(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCLI(t, "top", "--config", filepath.Join(dir, "missing.toml"), "--name-path", filepath.Join(dir, "yob1900.txt"))
	require.Error(t, err)
}

func TestConfigFileAppliesUnlessFlagChanged(t *testing.T) {
	dir := t.TempDir()
	namePath := writeNames(t, dir)
	cfgPath := filepath.Join(dir, "config.toml")
	body := "name-path = \"" + filepath.ToSlash(namePath) + "\"\ntop = 0\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	out, _, err := runCLI(t, "top", "--config", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "Abbey")

	out, _, err = runCLI(t, "top", "--config", cfgPath, "--top", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Abbey")
}

func TestVerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	namePath := writeNames(t, dir)

	_, errOut, err := runCLI(t, "top", "-v", "--config", filepath.Join(dir, "missing.toml"), "--name-path", namePath)
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG")
}

func TestValidateConfig(t *testing.T) {
	valid := model.Config{NamePath: "names/yob2000.txt", LabelPeriod: 5, Top: 5, Workers: 1}
	require.NoError(t, validateConfig(valid))

	cases := map[string]func(*model.Config){
		"empty path":      func(c *model.Config) { c.NamePath = " " },
		"negative period": func(c *model.Config) { c.LabelPeriod = -1 },
		"negative top":    func(c *model.Config) { c.Top = -1 },
		"zero workers":    func(c *model.Config) { c.Workers = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	var decoded map[string]any
	_, err := toml.Decode(defaultConfigTemplate(), &decoded)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestWriteDefaultConfigKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, writeDefaultConfig(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfigTemplate(), string(data))

	require.NoError(t, os.WriteFile(path, []byte("top = 1\n"), 0o644))
	require.NoError(t, writeDefaultConfig(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "top = 1\n", string(data))
}
