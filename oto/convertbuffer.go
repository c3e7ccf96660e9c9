package oto

import "math"

// FloatBufferTo16BitLE converts a []float32 buffer to 16-bit little-endian
// integer bytes, clamping out-of-range samples.
func FloatBufferTo16BitLE(buff []float32) []byte {
	ret := make([]byte, len(buff)*2)
	for i, v := range buff {
		var uv int16
		if v < -1.0 {
			uv = -math.MaxInt16
		} else if v > 1.0 {
			uv = math.MaxInt16
		} else {
			uv = int16(v * math.MaxInt16)
		}
		ret[i*2] = byte(uv)
		ret[i*2+1] = byte(uv >> 8)
	}
	return ret
}
