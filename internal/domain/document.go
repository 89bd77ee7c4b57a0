package domain

// Record is the result of processing one archive stop: a dated document
// with its cleaned text body. A record is never mutated after creation.
type Record struct {
	URL    string
	Date   string
	Text   string
	Source string
}

// Summary describes the outcome of one archive walk.
type Summary struct {
	Collected int
	Skipped   int
	Completed bool
	LastURL   string
}
