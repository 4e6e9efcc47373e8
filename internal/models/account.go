// server/internal/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is a portal credential. One document per login, scoped to a
// single role; the same person using two portals has two accounts.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AccountID string             `bson:"accountID" json:"accountID"`

	Email    string `bson:"email" json:"email"`
	Name     string `bson:"name" json:"name"`
	Password string `bson:"password" json:"-"` // bcrypt hash
	Role     string `bson:"role" json:"role"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`

	// Linkage to the domain entity behind the login, per role.
	DriverID   string `bson:"driverID,omitempty" json:"driverID,omitempty"`
	ClientName string `bson:"clientName,omitempty" json:"clientName,omitempty"`

	Status    string    `bson:"status" json:"status"` // active | blocked
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
