package models

// Match is the mutually confirmed pairing. Its key is the lexicographically
// sorted id pair "min_max", which makes creation idempotent regardless of
// which side triggers it.
type Match struct {
	ID        string   `bson:"_id" json:"id"`
	Users     []string `bson:"users" json:"users"`
	CreatedAt int64    `bson:"createdAt" json:"createdAt"`
}

// MatchKey canonicalizes an unordered user pair. Symmetric by construction:
// MatchKey(a, b) == MatchKey(b, a).
func MatchKey(a, b string) string {
	lo, hi := SortPair(a, b)
	return lo + "_" + hi
}

func SortPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
