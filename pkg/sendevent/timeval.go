package sendevent

import (
	"fmt"
	"math"
	"time"
)

// TimeVal is the timestamp of an event, like the kernel's struct timeval.
type TimeVal struct {
	Sec  int64
	Usec int64
}

// Duration converts the timestamp to the offset since the epoch. It fails
// for negative fields and if the result does not fit into a time.Duration.
func (tv TimeVal) Duration() (time.Duration, error) {
	if tv.Sec < 0 || tv.Usec < 0 {
		return 0, fmt.Errorf("%w: negative timestamp %s", TimeErr, tv)
	}
	if tv.Usec > math.MaxInt64/int64(time.Microsecond) {
		return 0, fmt.Errorf("%w: timestamp %s overflows", TimeErr, tv)
	}
	usec := time.Duration(tv.Usec) * time.Microsecond
	if tv.Sec > (math.MaxInt64-int64(usec))/int64(time.Second) {
		return 0, fmt.Errorf("%w: timestamp %s overflows", TimeErr, tv)
	}
	return time.Duration(tv.Sec)*time.Second + usec, nil
}

func (tv TimeVal) String() string {
	return fmt.Sprintf("%d.%06d", tv.Sec, tv.Usec)
}
