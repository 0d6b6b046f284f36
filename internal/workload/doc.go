/*
Package workload drives ordered indexes with synthetic database workloads and
measures latency and heap pressure.

An Index is implemented for the B+ tree of this module and, as a
reference, for github.com/google/btree. Workloads mix point reads, writes,
deletions and range scans in fixed ratios:

	OLTP       90% get, 10% insert
	OLAP       10% get, 90% insert
	Reporting  range scans over 100 consecutive keys
	Churn      40% insert, 40% delete, 20% pop of the minimum

Results of a run are published on a broadcaster, so that several consumers
(progress output, tracing, tables) can follow a run while it progresses.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package workload

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bptree.workload'
func tracer() tracing.Trace {
	return tracing.Select("bptree.workload")
}
