package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const cursorPrefix = "after"

// EncodeToken creates an opaque base64 token pointing just past the given
// position (a batch id or a transfer sequence number).
func EncodeToken(position int64) string {
	tokenStr := fmt.Sprintf("%s|%d", cursorPrefix, position)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (int64, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[0] != cursorPrefix {
		return 0, fmt.Errorf("invalid pagination token format (prefix)")
	}
	position, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (position parse): %w", err)
	}
	if position < 0 {
		return 0, fmt.Errorf("invalid pagination token format (negative position)")
	}
	return position, nil
}

// NextToken returns a token for the following page when the page came back full.
func NextToken(pageLen, limit int, lastPosition int64) *string {
	if limit <= 0 || pageLen < limit {
		return nil
	}
	token := EncodeToken(lastPosition)
	return &token
}
