package pipeline

// RunStats tracks aggregate counters for one batch run. It is owned by the
// collector loop in [Batch.Run]; workers never touch it.
type RunStats struct {
	RunID            string
	Total            int
	Done             int
	Succeeded        int
	Failed           int
	Cancelled        bool
	TotalOutputBytes int64
}
