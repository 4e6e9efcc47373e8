// server/internal/models/common.go
package models

// Portal roles. Each portal issues tokens scoped to exactly one of these.
const (
	RoleDriver = "driver"
	RolePosto  = "posto"
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Freight / fuel purchase completion status.
const (
	StatusPending  = "pending"
	StatusComplete = "complete"
)

// ReceiptKind identifies which comprovante slot of a freight an upload
// targets. Kept as a closed set instead of free-form strings.
type ReceiptKind string

const (
	ReceiptLoading   ReceiptKind = "loading"
	ReceiptUnloading ReceiptKind = "unloading"
	ReceiptReception ReceiptKind = "reception"
)

// Valid reports whether k is one of the known receipt slots.
func (k ReceiptKind) Valid() bool {
	switch k {
	case ReceiptLoading, ReceiptUnloading, ReceiptReception:
		return true
	}
	return false
}

// MediaPointer references a document stored on S3 (or a compatible service).
type MediaPointer struct {
	ID       string `bson:"id" json:"id"`
	URL      string `bson:"url" json:"url"`
	FileName string `bson:"fileName" json:"fileName"`
	FileType string `bson:"fileType" json:"fileType"` // e.g. "image/png", "application/pdf"
}
