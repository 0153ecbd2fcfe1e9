package collector

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// procStat holds the fields of /proc/<pid>/stat this collector uses, in clock
// ticks. Field numbers in comments are the 1-indexed positions of proc(5).
type procStat struct {
	UTime     uint64 // (14)
	STime     uint64 // (15)
	CUTime    int64  // (16)
	CSTime    int64  // (17)
	StartTime uint64 // (22)
}

// ActiveTicks is utime + stime + cutime + cstime.
func (p procStat) ActiveTicks() float64 {
	return float64(p.UTime) + float64(p.STime) + float64(p.CUTime) + float64(p.CSTime)
}

const (
	statFieldUTime     = 14
	statFieldSTime     = 15
	statFieldCUTime    = 16
	statFieldCSTime    = 17
	statFieldStartTime = 22
)

// parseProcStat is the only place that knows the stat field offsets. The comm
// field (2) may contain spaces and parentheses, so fields from 3 onwards are
// located after the last ')'.
func parseProcStat(content string) (procStat, error) {
	var st procStat

	end := strings.LastIndexByte(content, ')')
	if end < 0 {
		return st, errors.New("stat: no command field")
	}
	// rest[0] is field 3 (state)
	rest := strings.Fields(content[end+1:])
	field := func(n int) (string, error) {
		i := n - 3
		if i < 0 || i >= len(rest) {
			return "", errors.Errorf("stat: missing field %d", n)
		}
		return rest[i], nil
	}

	var err error
	if st.UTime, err = statUint(field, statFieldUTime); err != nil {
		return st, err
	}
	if st.STime, err = statUint(field, statFieldSTime); err != nil {
		return st, err
	}
	if st.CUTime, err = statInt(field, statFieldCUTime); err != nil {
		return st, err
	}
	if st.CSTime, err = statInt(field, statFieldCSTime); err != nil {
		return st, err
	}
	if st.StartTime, err = statUint(field, statFieldStartTime); err != nil {
		return st, err
	}
	return st, nil
}

func statUint(field func(int) (string, error), n int) (uint64, error) {
	s, err := field(n)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "stat: field %d", n)
	}
	return v, nil
}

func statInt(field func(int) (string, error), n int) (int64, error) {
	s, err := field(n)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "stat: field %d", n)
	}
	return v, nil
}
