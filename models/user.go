package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty" json:"-"`
	AuthProvider string             `bson:"authProvider" json:"authProvider"`
	GoogleID     *string            `bson:"googleId,omitempty" json:"-"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`

	// Profile fields
	Username  string   `bson:"username" json:"username"`
	Name      string   `bson:"name" json:"name"`
	Avatar    string   `bson:"avatar" json:"avatar"`
	CoverImg  string   `bson:"coverImg" json:"coverImg"`
	Bio       string   `bson:"bio" json:"bio"`
	About     string   `bson:"about" json:"about"`
	Interests []string `bson:"interests" json:"interests"`
	Skills    []string `bson:"skills" json:"skills"`
	Location  string   `bson:"location" json:"location"`
	Status    string   `bson:"status" json:"status"`

	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`

	// Visible defaults to true; only an explicit false hides the profile
	// from discovery. Stored as a pointer so absent and false differ.
	Visible *bool `bson:"visible,omitempty" json:"visible,omitempty"`

	// DID is an opaque decentralized-identity string linked by the wallet
	// flow. Nothing here interprets it.
	DID string `bson:"did,omitempty" json:"did,omitempty"`

	BirthDate int64 `bson:"birthDate" json:"birthDate"`
	LastSeen  int64 `bson:"lastSeen" json:"lastSeen"`
}

func (u *User) IsVisible() bool {
	return u.Visible == nil || *u.Visible
}

func (u *User) HasCoordinates() bool {
	return u.Latitude != nil && u.Longitude != nil &&
		!(*u.Latitude == 0 && *u.Longitude == 0)
}
