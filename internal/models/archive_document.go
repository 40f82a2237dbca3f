package models

import "time"

// ArchiveDocument is one candidate document as fetched from the external
// archive, already normalized: correspondent and document type arrive from
// the API either as names, nested objects or bare ids, and are flattened to
// plain names here.
type ArchiveDocument struct {
	ID            int64
	Title         string
	Created       *time.Time
	Correspondent string
	DocumentType  string
	Text          string
}
