// ABOUTME: Shared helpers for models tests.
// ABOUTME: Keeps fixture encoding out of individual test files.
package models

import (
	"encoding/json"
	"strconv"
)

func encodeForTest(v any) ([]byte, error) {
	return json.Marshal(v)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
