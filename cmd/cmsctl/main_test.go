// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("REDIS_URL", "")
	t.Setenv("ENVIRONMENT", "development")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestGenreAdd(t *testing.T) {
	memoryEnv(t)

	out, err := execute(t, "genre", "add", "  Horror ")
	require.NoError(t, err)
	assert.Contains(t, out, `Created genre "Horror"`)
}

func TestGenreAdd_RejectsBlankName(t *testing.T) {
	memoryEnv(t)

	_, err := execute(t, "genre", "add", "   ")
	require.Error(t, err)
}

func TestGenreList_PrintsHeader(t *testing.T) {
	memoryEnv(t)

	out, err := execute(t, "genre", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
}

func TestContentList_Empty(t *testing.T) {
	memoryEnv(t)

	out, err := execute(t, "content", "list", "--filter", "tags", "--tag", "manga")
	require.NoError(t, err)
	assert.Contains(t, out, "No contents found")
}

func TestMigrate_RequiresPostgres(t *testing.T) {
	memoryEnv(t)

	_, err := execute(t, "migrate", "up")
	require.ErrorIs(t, err, errNotPostgres)
}

func TestRoot_InvalidConfig(t *testing.T) {
	memoryEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := execute(t, "genre", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}
