package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relojeria-admin/internal/infrastructure/sqlite"
	"github.com/jhoicas/relojeria-admin/pkg/logger"
)

func TestRun_SiembraYLuegoNoToca(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mirror.db")

	var out bytes.Buffer
	require.NoError(t, run(ctx, path, false, logger.Nop(), &out))
	assert.Contains(t, out.String(), "Espejo sembrado en")
	assert.Contains(t, out.String(), sqlite.BucketUsers)

	out.Reset()
	require.NoError(t, run(ctx, path, false, logger.Nop(), &out))
	assert.Contains(t, out.String(), "ya estaba sembrado")
}

func TestRun_ResetVuelveASembrar(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mirror.db")

	require.NoError(t, run(ctx, path, false, logger.Nop(), &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, run(ctx, path, true, logger.Nop(), &out))
	assert.Contains(t, out.String(), "Espejo sembrado en")
}

// Tras run el archivo se reabre con los datos sembrados.
func TestRun_ReabreConDatosSembrados(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mirror.db")
	require.NoError(t, run(ctx, path, false, logger.Nop(), &bytes.Buffer{}))

	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, 4, store.Counts()[sqlite.BucketUsers])
}
