package models

import "time"

// ContentVersion is one revision of a generated content item. Versions form
// a lineage per content item: ParentID references the revision this one was
// derived from (empty for the root) and Version increases strictly in
// creation order within a lineage.
type ContentVersion struct {
	ID        string    `json:"id"`
	ContentID string    `json:"content_id"`
	Version   int       `json:"version"`
	ParentID  string    `json:"parent_id,omitempty"`
	Tone      string    `json:"tone,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// IsRoot reports whether this version starts a lineage.
func (v ContentVersion) IsRoot() bool {
	return v.ParentID == ""
}
