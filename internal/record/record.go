package record

import (
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	// Key is the store key holding the serialized record list.
	Key = "data"
	// Null is the stored marker meaning "no records".
	Null = "null"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is one formatted log line, either a start or a stop marker.
type Record string

// Timestamp formats t the way records show the time of day, without padding.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%d시 %d분 %d초", t.Hour(), t.Minute(), t.Second())
}

// Start builds the record written when a session begins.
func Start(at time.Time, note string) Record {
	return build("시작", at, note)
}

// Stop builds the record written when a session ends after elapsed seconds.
func Stop(at time.Time, elapsed int, note string) Record {
	return build(fmt.Sprintf("종료 - %d초 경과", elapsed), at, note)
}

func build(marker string, at time.Time, note string) Record {
	return Record(fmt.Sprintf("[%s] %s / %s", marker, Timestamp(at), note))
}

// Encode serializes the list as a JSON array of strings. A nil list encodes
// as an empty array, never as the null marker.
func Encode(list []Record) (string, error) {
	if list == nil {
		list = []Record{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode records: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored list. An empty value and the null marker both yield
// an empty list.
func Decode(value string) ([]Record, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == Null {
		return []Record{}, nil
	}

	var list []Record
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if list == nil {
		list = []Record{}
	}
	return list, nil
}
