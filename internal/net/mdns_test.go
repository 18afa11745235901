package net

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBrowseReturnsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	// Without multicast the query may fail before the cancel lands; either
	// way Browse must not sit out the full timeout.
	_ = Browse(ctx, 30*time.Second, func(string) {})
	assert.Less(t, time.Since(start), 5*time.Second)
}
