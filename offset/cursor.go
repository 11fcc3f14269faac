// Package offset encodes page positions as opaque offset cursors.
//
// Cursors have the form base64("cursor:offset:N"), where N is the zero-based
// position of the item a client should resume from. They let a PagedResult be
// exposed through a Relay-style connection while the underlying pagination
// stays page based.
//
// Example usage:
//
//	cursor := offset.EncodeCursor(20)
//	page := offset.PageForOffset(offset.DecodeCursor(cursor), 10) // 3
package offset

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// EncodeCursor takes an integer offset and encodes it to a base64 string as "cursor:offset:NUMBER".
func EncodeCursor(offset int) *string {
	data := "cursor:offset:" + strconv.Itoa(offset)
	encoded := base64.URLEncoding.EncodeToString([]byte(data))
	return &encoded
}

// DecodeCursor takes a base64 string and decodes it to extract the offset from a string
// based on "cursor:offset:NUMBER". It defaults to 0 if it cannot decode or has any error.
func DecodeCursor(input *string) int {
	if input == nil {
		return 0
	}

	decoded, err := base64.URLEncoding.DecodeString(*input)
	if err != nil {
		return 0
	}

	data := strings.Split(string(decoded), ":")
	if len(data) != 3 || data[0] != "cursor" || data[1] != "offset" {
		return 0
	}

	offset, err := strconv.ParseInt(data[2], 10, 32)
	if err != nil || offset < 0 {
		return 0
	}
	return int(offset)
}

// PageForOffset returns the 1-based page that contains the item at offset
// for the given page size. Non-positive sizes and negative offsets map to page 1.
func PageForOffset(offset, pageSize int) int {
	if pageSize <= 0 || offset <= 0 {
		return 1
	}
	return offset/pageSize + 1
}

// PageForCursor decodes an offset cursor and returns the page it falls on.
func PageForCursor(cursor *string, pageSize int) int {
	return PageForOffset(DecodeCursor(cursor), pageSize)
}

// StartOffset returns the zero-based offset of the first item on a 1-based page.
func StartOffset(page, pageSize int) int {
	if page <= 1 || pageSize <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}
