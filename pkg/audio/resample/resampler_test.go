// ABOUTME: Tests for the host sink resampler
// ABOUTME: Checks output length, level and channel layout through the filter
package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run feeds chunks of a constant signal through r and returns everything it
// produced including the flushed tail
func run(t *testing.T, r *Resampler, frame []int32, frames, chunk int) []int32 {
	t.Helper()

	var all []int32
	for sent := 0; sent < frames; sent += chunk {
		n := min(chunk, frames-sent)
		in := make([]int32, 0, n*len(frame))
		for i := 0; i < n; i++ {
			in = append(in, frame...)
		}
		out, err := r.Resample(in)
		require.NoError(t, err)
		all = append(all, out...)
	}

	tail, err := r.Flush()
	require.NoError(t, err)
	return append(all, tail...)
}

func TestNew(t *testing.T) {
	r, err := New(8000, 48000, 1)
	require.NoError(t, err)
	assert.Equal(t, 8000, r.InputRate())
	assert.Equal(t, 48000, r.OutputRate())
	assert.Equal(t, 1, r.Channels())

	r, err = New(8000, 16000, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Channels(), "channel count clamped to 1")

	_, err = New(0, 48000, 1)
	assert.Error(t, err)
}

func TestResampleUpsampling(t *testing.T) {
	r, err := New(8000, 48000, 1)
	require.NoError(t, err)

	const level = 1 << 20
	out := run(t, r, []int32{level}, 1600, 400)

	assert.InDelta(t, 9600, len(out), 9600*0.05)
	mid := out[len(out)/2]
	assert.InDelta(t, level, mid, level*0.02, "steady state keeps the input level")
}

func TestResampleDownsampling(t *testing.T) {
	r, err := New(48000, 8000, 1)
	require.NoError(t, err)

	const level = -(1 << 19)
	out := run(t, r, []int32{level}, 4800, 1000)

	assert.InDelta(t, 800, len(out), 800*0.05)
	assert.InDelta(t, level, out[len(out)/2], -level*0.02)
}

func TestResampleStereoKeepsChannels(t *testing.T) {
	r, err := New(8000, 16000, 2)
	require.NoError(t, err)

	const level = 1 << 21
	out := run(t, r, []int32{level, -level}, 800, 200)

	require.Zero(t, len(out)%2, "whole frames only")
	assert.InDelta(t, 3200, len(out), 3200*0.05)

	frame := len(out) / 4
	assert.InDelta(t, level, out[frame*2], level*0.02)
	assert.InDelta(t, -level, out[frame*2+1], level*0.02)
}

func TestResampleEmptyInput(t *testing.T) {
	r, err := New(8000, 16000, 1)
	require.NoError(t, err)

	out, err := r.Resample(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestToSampleClamps(t *testing.T) {
	assert.Equal(t, int32(FullScale-1), toSample(1.5))
	assert.Equal(t, int32(-FullScale), toSample(-2))
	assert.Equal(t, int32(FullScale/2), toSample(0.5))
	assert.Equal(t, int32(0), toSample(0))
}
