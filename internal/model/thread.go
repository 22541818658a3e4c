package model

import "time"

type SummaryLength string

const (
	LengthShort  SummaryLength = "0"
	LengthMedium SummaryLength = "1"
	LengthLong   SummaryLength = "2"
)

// ParseSummaryLength maps a raw query value to a length selector.
// Anything other than "1" or "2" is treated as short.
func ParseSummaryLength(s string) SummaryLength {
	switch SummaryLength(s) {
	case LengthMedium:
		return LengthMedium
	case LengthLong:
		return LengthLong
	default:
		return LengthShort
	}
}

// Cast is a single post of a Farcaster thread.
type Cast struct {
	Hash           string
	ParentHash     string
	AuthorUsername string
	Text           string
	Timestamp      time.Time
}

type ThreadSummary struct {
	ID         int64
	Hash       string
	Length     SummaryLength
	Summary    string
	LastUpdate time.Time
	CreatedAt  time.Time
}
