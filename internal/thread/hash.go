package thread

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateHash creates a 4-character lowercase hex identity tag for a new
// item. The time-based salt keeps repeated adds of the same text apart; the
// tag only has to be unambiguous within its own collection at lookup time,
// not globally unique.
func GenerateHash(text string) string {
	data := fmt.Sprintf("%s%d", text, time.Now().UnixNano())
	sum := md5.Sum([]byte(data))
	return hex.EncodeToString(sum[:])[:4]
}
