package badger

import (
	"encoding/binary"

	"github.com/picko-ai/picko/core"
)

// Key prefixes for different data types
const (
	toolRecordPrefix  = "toolrec:"
	toolIDPrefix      = "toolid:"
	toolSeq           = "toolseq"
	interactionPrefix = "inter:"
)

// makeToolRecordKey generates the primary key of a tool.
// Format: prefix + seq, BigEndian so that prefix iteration yields insertion order.
func makeToolRecordKey(seq uint64) []byte {
	prefixBytes := []byte(toolRecordPrefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeToolIDKey generates the index key mapping a tool ID to its sequence.
func makeToolIDKey(id core.ID) []byte {
	return []byte(toolIDPrefix + string(id))
}

// makeSessionPrefix generates the partial key covering one session's interactions.
// Format: prefix:session\x00
func makeSessionPrefix(sessionID string) []byte {
	buf := make([]byte, 0, len(interactionPrefix)+len(sessionID)+1)
	buf = append(buf, interactionPrefix...)
	buf = append(buf, sessionID...)
	return append(buf, 0)
}

// makeInteractionKey generates the upsert key of an interaction.
// Format: prefix:session\x00toolID\x00type
func makeInteractionKey(sessionID string, toolID core.ID, interactionType core.InteractionType) []byte {
	buf := makeSessionPrefix(sessionID)
	buf = append(buf, toolID...)
	buf = append(buf, 0)
	return append(buf, interactionType.String()...)
}
