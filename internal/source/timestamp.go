package source

import (
	"errors"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/deprecated"
)

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp parses an exported create_ts value.
// Returns false for empty or unrecognised input.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// timestampDecoder converts one create_ts value to a UTC instant.
type timestampDecoder func(parquet.Value) (time.Time, bool)

// Julian day of 1970-01-01, the epoch of INT96 timestamps.
const julianUnixEpoch = 2440588

var errNotTimestamp = errors.New("not a timestamp column")

// newTimestampDecoder picks a decoder for the physical and logical type of
// the create_ts column: text, INT64 TIMESTAMP (millis, micros or nanos),
// INT32 DATE, or legacy INT96. Zone-less timestamps are read as UTC.
func newTimestampDecoder(t parquet.Type) (timestampDecoder, error) {
	switch t.Kind() {
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return func(v parquet.Value) (time.Time, bool) {
			return parseTimestamp(string(v.ByteArray()))
		}, nil

	case parquet.Int64:
		unit, ok := int64Unit(t)
		if !ok {
			return nil, errNotTimestamp
		}
		return func(v parquet.Value) (time.Time, bool) {
			return time.Unix(0, v.Int64()*int64(unit)).UTC(), true
		}, nil

	case parquet.Int32:
		if lt := t.LogicalType(); lt == nil || lt.Date == nil {
			return nil, errNotTimestamp
		}
		return func(v parquet.Value) (time.Time, bool) {
			return time.Unix(int64(v.Int32())*86400, 0).UTC(), true
		}, nil

	case parquet.Int96:
		return func(v parquet.Value) (time.Time, bool) {
			return int96Time(v.Int96()), true
		}, nil

	default:
		return nil, errNotTimestamp
	}
}

// int64Unit returns the duration of one tick of an INT64 timestamp column.
func int64Unit(t parquet.Type) (time.Duration, bool) {
	if lt := t.LogicalType(); lt != nil && lt.Timestamp != nil {
		switch u := lt.Timestamp.Unit; {
		case u.Millis != nil:
			return time.Millisecond, true
		case u.Micros != nil:
			return time.Microsecond, true
		case u.Nanos != nil:
			return time.Nanosecond, true
		}
	}
	if ct := t.ConvertedType(); ct != nil {
		switch *ct {
		case deprecated.TimestampMillis:
			return time.Millisecond, true
		case deprecated.TimestampMicros:
			return time.Microsecond, true
		}
	}
	return 0, false
}

// int96Time decodes the legacy Impala/Spark layout: nanoseconds of the day
// in the low 64 bits, Julian day in the high 32.
func int96Time(i deprecated.Int96) time.Time {
	nanos := int64(uint64(i[1])<<32 | uint64(i[0]))
	days := int64(i[2]) - julianUnixEpoch
	return time.Unix(days*86400, nanos).UTC()
}
