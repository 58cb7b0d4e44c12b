package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/hyphal/mycelia/core"
)

// Key prefixes for different data types
const (
	chatMessagePrefix     = "chatmsg"
	chatMessageDatePrefix = "chatmsgd"
)

// makeChatMessageKey generates a key for a chat message by ID.
func makeChatMessageKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chatMessagePrefix, id))
}

// makeChatDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeChatDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := chatMessageDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChatDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialChatDateKey(timestamp time.Time) []byte {
	prefix := chatMessageDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processor string) []byte {
	return []byte(fmt.Sprintf("%s:chkpt", processor))
}
