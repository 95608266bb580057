package article

import (
	"crypto/sha1"
	"encoding/hex"
	"time"
)

// Section is one named block of article text (abstract, body division,
// table row) in document order.
type Section struct {
	Name string
	Text string
}

// Article is the normalized record produced by the format parsers and
// forwarded to the sink. The pipeline itself never inspects the fields;
// the sink keys its duplicate-skip policy on ID and Entry.
type Article struct {
	ID           string
	Source       string
	Published    string
	Publication  string
	Authors      string
	Affiliations string
	Title        string
	Tags         string
	Reference    string
	Entry        time.Time

	Sections []Section
}

// UID derives a stable article id from text, for sources that carry no
// explicit identifier. Matches across reruns so the sink can dedup.
func UID(text string) string {
	sum := sha1.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
