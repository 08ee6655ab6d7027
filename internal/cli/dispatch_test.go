package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskbot/internal/bot"
	"taskbot/internal/cli"
	"taskbot/internal/commands"
	"taskbot/internal/config"
	"taskbot/internal/exitcode"
	"taskbot/internal/testutil"
)

// testFactory creates a transport factory that returns the given FakeTransport.
func testFactory(transport *testutil.FakeTransport) cli.TransportFactory {
	return func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (bot.Transport, error) {
		return transport, nil
	}
}

func failingFactory(err error) cli.TransportFactory {
	return func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (bot.Transport, error) {
		return nil, err
	}
}

// isolate clears token variables and runs the test in an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"TASKBOT_TOKEN", "TELEGRAM_BOT_TOKEN", "TASKBOT_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
	return t.TempDir()
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeTransport()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command \"unknowncmd\" for \"taskbot\"\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeTransport()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr.String(), "error: unknown flag: --quiet") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeTransport()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeTransport()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := commands.VersionString() + "\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
}

func TestDispatcher_MissingToken(t *testing.T) {
	dir := isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeTransport()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--config", dir}, &stdout, &stderr)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr.String(), "bot token is not configured") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestDispatcher_RejectedToken(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "bad")
	factory := failingFactory(errors.Join(bot.ErrUnauthorized, errors.New("401 Unauthorized")))
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"run", "--config", dir}, &stdout, &stderr)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}

func TestDispatcher_TransportFailure(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, failingFactory(errors.New("dial tcp: timeout")))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--config", dir, "--log-level", "error"}, &stdout, &stderr)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr.String(), "dial tcp: timeout") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeTransport()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--config", dir, "--log-level", "loud"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
}

func TestDispatcher_RunServesUntilStreamEnds(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	transport := testutil.NewFakeTransport()
	transport.Push(42, "/create_task")
	transport.Push(42, "Buy milk")
	transport.Close()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(transport))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"run", "--config", dir, "--log-level", "error"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitcode.Success, code, stderr.String())
	}
	if !strings.Contains(transport.Last(42), "Task ID: 1") {
		t.Errorf("unexpected reply %q", transport.Last(42))
	}
	if len(transport.Menu()) == 0 {
		t.Error("expected command menu to be published")
	}
}

func TestDispatcher_ConfigInit(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "taskbot")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"config", "init", "--config", target}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitcode.Success, code, stderr.String())
	}
	path := filepath.Join(target, config.ConfigFile)
	if stdout.String() != "Wrote "+path+"\n" {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file: %v", err)
	}

	// A second init keeps the file.
	stdout.Reset()
	stderr.Reset()
	code = dispatcher.Run(context.Background(), []string{"config", "init", "--config", target}, &stdout, &stderr)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr.String(), "--force") {
		t.Errorf("expected hint about --force, got %q", stderr.String())
	}

	code = dispatcher.Run(context.Background(), []string{"config", "init", "--force", "--config", target}, &stdout, &stderr)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d with --force, got %d", exitcode.Success, code)
	}
}

func TestDispatcher_ConfigPath(t *testing.T) {
	dir := isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"config", "path", "--config", dir}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout.String() != filepath.Join(dir, config.ConfigFile)+"\n" {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
}
