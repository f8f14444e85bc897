package models

const (
	SwipeLeft  = "left"
	SwipeRight = "right"
)

// Swipe records one directional decision. The document key is the ordered
// pair "from_to", so re-swiping the same target overwrites in place.
type Swipe struct {
	ID        string `bson:"_id" json:"id"`
	From      string `bson:"from" json:"from"`
	To        string `bson:"to" json:"to"`
	Direction string `bson:"direction" json:"direction"`
	CreatedAt int64  `bson:"createdAt" json:"createdAt"`
}

func SwipeKey(from, to string) string {
	return from + "_" + to
}

// MutualRight reports whether two directional swipes form a match: both
// must exist and both must be right.
func MutualRight(a, b *Swipe) bool {
	return a != nil && b != nil &&
		a.Direction == SwipeRight && b.Direction == SwipeRight
}
