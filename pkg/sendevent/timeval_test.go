package sendevent

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeVal_Duration(t *testing.T) {
	tests := []struct {
		tv       TimeVal
		expected time.Duration
	}{
		{TimeVal{0, 0}, 0},
		{TimeVal{0, 1}, time.Microsecond},
		{TimeVal{1, 1}, time.Second + time.Microsecond},
		{TimeVal{0, 500000}, 500 * time.Millisecond},
		{TimeVal{1711354959, 655837}, 1711354959*time.Second + 655837*time.Microsecond},
		{TimeVal{12, 999999}, 12*time.Second + 999999*time.Microsecond},
		// usec beyond one second carries into the seconds.
		{TimeVal{1, 1500000}, 2500 * time.Millisecond},
	}
	for _, tt := range tests {
		got, err := tt.tv.Duration()
		require.NoError(t, err, tt.tv)
		require.Equal(t, tt.expected, got, tt.tv)
	}
}

func TestTimeVal_Duration_allUsec(t *testing.T) {
	for _, sec := range []int64{0, 1, 3600, 1 << 32} {
		for usec := int64(0); usec <= 999999; usec += 9999 {
			got, err := TimeVal{sec, usec}.Duration()
			require.NoError(t, err)
			require.Equal(t, sec, int64(got/time.Second))
			require.Equal(t, usec*1000, int64(got%time.Second))
		}
	}
}

func TestTimeVal_Duration_fail(t *testing.T) {
	tests := []TimeVal{
		{-1, 0},
		{0, -1},
		{math.MaxInt64, 0},
		{0, math.MaxInt64},
		{math.MaxInt64 / int64(time.Second), 999999},
	}
	for _, tv := range tests {
		_, err := tv.Duration()
		require.ErrorIs(t, err, TimeErr, tv)
	}
}
