package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"francoggm/paygate-go-redis/internal/app/ledger"

	"github.com/stretchr/testify/require"
)

func setServerEnv(t *testing.T, boltPath string) {
	t.Helper()
	t.Setenv("PAYGATE_CONFIG", "")
	t.Setenv("PAYGATE_PROVIDER_WEBHOOK_SECRETS", "whsec_main_test")
	t.Setenv("PAYGATE_LEDGER_BACKEND", "bolt")
	t.Setenv("PAYGATE_LEDGER_BOLT_PATH", boltPath)
	t.Setenv("PAYGATE_SERVER_PORT", "0")
}

func TestRunClosesLedgerOnShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paygate.db")
	setServerEnv(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, run(ctx, nil, &out))
	require.Contains(t, out.String(), "paygate stopped")

	// Bolt holds a file lock until Close, so a second open proves it ran.
	reopened, err := ledger.OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, reopened.Close())
}

func TestRunReturnsLedgerError(t *testing.T) {
	setServerEnv(t, filepath.Join(t.TempDir(), "missing", "paygate.db"))

	err := run(context.Background(), nil, &bytes.Buffer{})
	require.ErrorIs(t, err, ledger.ErrUnavailable)
}

func TestRunReturnsConfigError(t *testing.T) {
	setServerEnv(t, filepath.Join(t.TempDir(), "paygate.db"))

	err := run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, &bytes.Buffer{})
	require.ErrorContains(t, err, "config")
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	require.Error(t, run(context.Background(), []string{"--nope"}, &bytes.Buffer{}))
}
