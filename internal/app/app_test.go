package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"cmsarticle/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recalcStub struct {
	services.ArticleService
	calls atomic.Int32
}

func (s *recalcStub) RecalculateTagWeights(context.Context) (int, error) {
	s.calls.Add(1)
	return 0, nil
}

func TestStartTagWeightReconciler_BadSchedule(t *testing.T) {
	_, err := StartTagWeightReconciler("every tuesday", &recalcStub{})
	assert.ErrorContains(t, err, "tag weight schedule")
}

func TestStartTagWeightReconciler_Runs(t *testing.T) {
	svc := &recalcStub{}
	c, err := StartTagWeightReconciler("@every 1s", svc)
	require.NoError(t, err)
	defer func() { <-c.Stop().Done() }()

	assert.Eventually(t, func() bool { return svc.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
