package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchInputs(n int) []ComplianceInput {
	inputs := make([]ComplianceInput, n)
	for i := range inputs {
		in := scenarioInput()
		in.TaxpayerID = fmt.Sprintf("tp-%03d", i)
		inputs[i] = in
	}
	return inputs
}

func TestRecomputeCompliance_IsIdempotent(t *testing.T) {
	s := newTestScorer(t)
	inputs := batchInputs(25)

	first := s.RecomputeCompliance(context.Background(), inputs, 3)
	second := s.RecomputeCompliance(context.Background(), inputs, 8)

	require.Len(t, first, 25)
	for i := range first {
		require.NoError(t, first[i].Err)
		assert.Equal(t, i, first[i].Index)
		assert.Equal(t, inputs[i].TaxpayerID, first[i].Value.TaxpayerID)
		assert.Equal(t, first[i].Value.Digest, second[i].Value.Digest)
	}
}

func TestRecomputeCompliance_FailuresAreIsolated(t *testing.T) {
	s := newTestScorer(t)
	inputs := batchInputs(5)
	inputs[2].TaxpayerID = ""

	results := s.RecomputeCompliance(context.Background(), inputs, 2)
	for i, r := range results {
		if i == 2 {
			assert.Error(t, r.Err)
			continue
		}
		assert.NoError(t, r.Err)
		assert.Equal(t, "70.50", r.Value.Overall.StringFixed(2))
	}
}

func TestRunBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	results := RunBatch(ctx, []int{1, 2, 3}, 0, func(n int) (int, error) {
		calls.Add(1)
		return n * 2, nil
	})
	assert.Zero(t, calls.Load())
	for _, r := range results {
		assert.True(t, errors.Is(r.Err, context.Canceled))
	}
}

func TestRunBatch_RespectsConcurrencyLimit(t *testing.T) {
	var active, peak atomic.Int32
	items := make([]int, 40)
	results := RunBatch(context.Background(), items, 3, func(int) (int, error) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		active.Add(-1)
		return 0, nil
	})
	assert.Len(t, results, 40)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}
