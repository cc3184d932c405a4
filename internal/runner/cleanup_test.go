package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupReverseOrderOnce(t *testing.T) {
	cm := NewCleanupManager(time.Second)

	var order []string
	cm.RegisterFunc("first", func() error { order = append(order, "first"); return nil })
	cm.RegisterFunc("second", func() error { order = append(order, "second"); return nil })

	assert.Empty(t, cm.Execute())
	assert.Empty(t, cm.Execute())
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestCleanupCollectsErrorsAndPanics(t *testing.T) {
	cm := NewCleanupManager(time.Second)
	closeErr := errors.New("close failed")

	cm.RegisterFunc("device", func() error { return closeErr })
	cm.RegisterFunc("bad", func() error { panic("boom") })

	errs := cm.Execute()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "panic during cleanup of bad")
	assert.ErrorIs(t, errs[1], closeErr)
}

func TestCleanupTimeout(t *testing.T) {
	cm := NewCleanupManager(20 * time.Millisecond)
	release := make(chan struct{})
	defer close(release)

	cm.RegisterFunc("stuck", func() error { <-release; return nil })

	errs := cm.Execute()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "timeout")
}

func TestCleanupEmpty(t *testing.T) {
	assert.Nil(t, NewCleanupManager(0).Execute())
}
