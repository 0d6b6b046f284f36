package workload

import (
	"math/rand/v2"
	"strings"

	"github.com/cockroachdb/errors"
)

// Type names a mix of operations.
type Type string

const (
	OLTP      Type = "OLTP (90/10)"
	OLAP      Type = "OLAP (10/90)"
	Reporting Type = "Reporting (Range)"
	Churn     Type = "Churn (40/40/20)"
)

// Types lists all workloads in the order a run executes them.
var Types = []Type{OLTP, OLAP, Reporting, Churn}

// ErrUnknownWorkload is returned by ParseType for an unrecognized name.
var ErrUnknownWorkload = errors.New("workload: unknown workload")

// ParseType resolves a workload from a case-insensitive short name
// ("oltp", "olap", "reporting", "churn").
func ParseType(name string) (Type, error) {
	for _, t := range Types {
		short, _, _ := strings.Cut(string(t), " ")
		if strings.EqualFold(short, name) {
			return t, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownWorkload, "%q", name)
}

// ScanWidth is the number of consecutive keys a Reporting scan covers.
const ScanWidth = 100

// Stats counts what a workload execution did.
type Stats struct {
	Gets, Hits     int
	Inserts        int
	Deletes        int
	Pops           int
	Scans, Scanned int
}

var payload = []byte("x")

// Execute runs ops operations of workload w against idx. Keys are drawn
// uniformly from [0, keyspace).
func Execute(idx Index, w Type, ops int, keyspace int64, rnd *rand.Rand) Stats {
	var st Stats
	for range ops {
		choice := rnd.IntN(100)
		key := rnd.Int64N(max(keyspace, 1))
		switch w {
		case OLTP:
			if choice < 90 {
				st.get(idx, key)
			} else {
				idx.Insert(key, payload)
				st.Inserts++
			}
		case OLAP:
			if choice < 10 {
				st.get(idx, key)
			} else {
				idx.Insert(key, payload)
				st.Inserts++
			}
		case Reporting:
			st.Scans++
			idx.Range(key, key+ScanWidth, func(int64, []byte) bool {
				st.Scanned++
				return true
			})
		case Churn:
			switch {
			case choice < 40:
				idx.Insert(key, payload)
				st.Inserts++
			case choice < 80:
				if idx.Delete(key) {
					st.Deletes++
				}
			default:
				if idx.DeleteMin() {
					st.Pops++
				}
			}
		}
	}
	return st
}

func (st *Stats) get(idx Index, key int64) {
	st.Gets++
	if _, ok := idx.Get(key); ok {
		st.Hits++
	}
}
