package oto

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderChordShape(t *testing.T) {
	buf := renderChord([]float64{440}, 100*time.Millisecond, 0.5)
	assert.Len(t, buf, sampleRate/10*channelCount)
	assert.Equal(t, float32(0), buf[0], "attack starts from silence")
	assert.Equal(t, buf[0], buf[1], "both channels carry the same signal")

	var peak float32
	for _, v := range buf {
		if a := float32(math.Abs(float64(v))); a > peak {
			peak = a
		}
	}
	assert.Greater(t, peak, float32(0.4))
	assert.LessOrEqual(t, peak, float32(0.5), "single voice peaks at the gain")
}

func TestRenderChordNormalizesByVoiceCount(t *testing.T) {
	buf := renderChord([]float64{261.63, 329.63, 392.00, 466.16, 587.33}, 100*time.Millisecond, 1.0)
	for i, v := range buf {
		assert.LessOrEqual(t, float32(math.Abs(float64(v))), float32(1.0), "sample %d clips", i)
	}
}

func TestRenderChordRelease(t *testing.T) {
	buf := renderChord([]float64{440}, 100*time.Millisecond, 0.5)
	last := buf[len(buf)-channelCount]
	assert.InDelta(t, 0, float64(last), 0.001, "release ends near silence")
}

func TestFloatBufferTo16BitLE(t *testing.T) {
	buf := FloatBufferTo16BitLE([]float32{0, 1, -1, 2, -2})
	assert.Len(t, buf, 10)
	read := func(i int) int16 {
		return int16(buf[i*2]) | int16(buf[i*2+1])<<8
	}
	assert.Equal(t, int16(0), read(0))
	assert.Equal(t, int16(math.MaxInt16), read(1))
	assert.Equal(t, int16(-math.MaxInt16), read(2))
	assert.Equal(t, int16(math.MaxInt16), read(3), "overrange clamps")
	assert.Equal(t, int16(-math.MaxInt16), read(4))
}
