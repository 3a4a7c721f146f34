package metastore

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/halvard/orglog/internal/apperr"
)

// recordVersion is bumped whenever the on-disk layout changes. A stored
// record with any other version byte is treated as corruption.
const recordVersion = 1

// Record is the persisted metadata for one document: its display title and
// publication instant. Published is always UTC; it is serialized as RFC3339
// text so the stored form is timezone-independent.
type Record struct {
	Title     string
	Published time.Time
}

// Encode renders the record in its versioned binary form: a version byte,
// then the uvarint-length-prefixed title, then the uvarint-length-prefixed
// RFC3339 timestamp.
func (r Record) Encode() []byte {
	ts := r.Published.UTC().Format(time.RFC3339)
	buf := make([]byte, 0, 1+2*binary.MaxVarintLen64+len(r.Title)+len(ts))
	buf = append(buf, recordVersion)
	buf = appendString(buf, r.Title)
	buf = appendString(buf, ts)
	return buf
}

// DecodeRecord is the inverse of Encode. Any deviation from the expected
// layout means the store is corrupt or written by an unknown version; the
// error wraps apperr.ErrCorrupt and must never be ignored.
func DecodeRecord(data []byte) (Record, error) {
	if len(data) == 0 {
		return Record{}, fmt.Errorf("metastore: empty record: %w", apperr.ErrCorrupt)
	}
	if data[0] != recordVersion {
		return Record{}, fmt.Errorf("metastore: record version %d: %w", data[0], apperr.ErrCorrupt)
	}
	rest := data[1:]

	title, rest, err := readString(rest)
	if err != nil {
		return Record{}, err
	}
	ts, rest, err := readString(rest)
	if err != nil {
		return Record{}, err
	}
	if len(rest) != 0 {
		return Record{}, fmt.Errorf("metastore: %d trailing bytes: %w", len(rest), apperr.ErrCorrupt)
	}

	published, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return Record{}, fmt.Errorf("metastore: bad timestamp %q: %w", ts, apperr.ErrCorrupt)
	}
	return Record{Title: title, Published: published.UTC()}, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func readString(data []byte) (string, []byte, error) {
	n, w := binary.Uvarint(data)
	if w <= 0 || n > uint64(len(data)-w) {
		return "", nil, fmt.Errorf("metastore: truncated record: %w", apperr.ErrCorrupt)
	}
	return string(data[w : w+int(n)]), data[w+int(n):], nil
}
