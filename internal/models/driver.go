// server/internal/models/driver.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlateList holds a driver's vehicle plates. Older documents stored the
// plates as a JSON-encoded string; decoding normalizes both shapes into a
// plain []string so the rest of the code never re-parses.
type PlateList []string

// UnmarshalBSONValue accepts either a bson array of strings or a legacy
// JSON-encoded string ("[\"ABC1D23\"]" or a bare "ABC1D23").
func (p *PlateList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeArray:
		var plates []string
		if err := bson.UnmarshalValue(t, data, &plates); err != nil {
			return err
		}
		*p = plates
		return nil
	case bson.TypeString:
		var raw string
		if err := bson.UnmarshalValue(t, data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*p = nil
			return nil
		}
		if strings.HasPrefix(raw, "[") {
			var plates []string
			if err := json.Unmarshal([]byte(raw), &plates); err != nil {
				return fmt.Errorf("invalid legacy plates value %q: %w", raw, err)
			}
			*p = plates
			return nil
		}
		*p = []string{raw}
		return nil
	case bson.TypeNull:
		*p = nil
		return nil
	}
	return fmt.Errorf("cannot decode %v into PlateList", t)
}

// Contains reports whether the list holds the given plate (case-insensitive).
func (p PlateList) Contains(plate string) bool {
	for _, candidate := range p {
		if strings.EqualFold(candidate, plate) {
			return true
		}
	}
	return false
}

// Driver is the registry entry for a motorista. Authentication is
// admin-gated: a driver account only logs in after Authenticated is set.
type Driver struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DriverID string             `bson:"driverID" json:"driverID"`

	Name  string `bson:"name" json:"name"`
	CPF   string `bson:"cpf" json:"cpf"`
	Phone string `bson:"phone" json:"phone"`

	Plates     PlateList `bson:"plates" json:"plates"`
	ClientName string    `bson:"clientName,omitempty" json:"clientName,omitempty"`

	Active        bool `bson:"active" json:"active"`
	Authenticated bool `bson:"authenticated" json:"authenticated"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
