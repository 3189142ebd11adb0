package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Cursor identifies a page of a sorted listing so clients can follow
// "next" links without rebuilding the query string.
type Cursor struct {
	Page      int
	Limit     int
	SortField string
	Direction string
}

// EncodeCursor creates a base64 token from a cursor.
func EncodeCursor(c Cursor) string {
	return EncodeMultiFieldToken(strconv.Itoa(c.Page), strconv.Itoa(c.Limit), c.SortField, c.Direction)
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 4 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	page, err := strconv.Atoi(parts[0])
	if err != nil || page < 1 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (page): %q", parts[0])
	}
	limit, err := strconv.Atoi(parts[1])
	if err != nil || limit < 1 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (limit): %q", parts[1])
	}

	return Cursor{Page: page, Limit: limit, SortField: parts[2], Direction: parts[3]}, nil
}

// NextCursor returns the token for the page after p, or "" on the last page.
func NextCursor[T any](p Page[T], sortField, direction string) string {
	if !p.HasNext {
		return ""
	}
	return EncodeCursor(Cursor{Page: p.Page + 1, Limit: p.Limit, SortField: sortField, Direction: direction})
}

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
