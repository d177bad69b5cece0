package models

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is the metadata of one uploaded file. PDF holds the blob name.
type Document struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name"          json:"name"`
	Email     string             `bson:"email"         json:"email"`
	Phone     string             `bson:"phone"         json:"phone"`
	PDF       string             `bson:"pdf"           json:"pdf"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}

// BlobName derives the stored name of an upload: the unix-millisecond
// timestamp followed by the base of the client's filename.
func BlobName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == "/" || base == ".." {
		base = "upload"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + base
}
