package errdefs

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMatchesKind(t *testing.T) {
	err := NotTracked(EntityAliasGroup, "work")

	assert.ErrorIs(t, err, ErrNotTracked)
	assert.NotErrorIs(t, err, ErrAlreadyTracked)
	assert.Equal(t, `alias group "work": not tracked`, err.Error())
}

func TestErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("creating project: %w", AlreadyTracked(EntityLibrary, "main"))

	require.ErrorIs(t, err, ErrAlreadyTracked)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, EntityLibrary, e.Entity)
	assert.Equal(t, "main", e.Name)
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrConfigIO, EntityConfig, "/tmp/config.toml", fs.ErrNotExist)

	assert.ErrorIs(t, err, ErrConfigIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestIsEntity(t *testing.T) {
	err := NotTracked(EntityProjectType, "rust")

	assert.True(t, IsEntity(err, ErrNotTracked, EntityProjectType))
	assert.False(t, IsEntity(err, ErrNotTracked, EntityAliasGroup))
	assert.False(t, IsEntity(errors.New("plain"), ErrNotTracked, EntityProjectType))
}
