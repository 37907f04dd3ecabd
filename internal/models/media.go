package models

import "strings"

// Zone groups uploaded files under one shared set of metadata.
type Zone struct {
	BaseModelWithDeleted
	EventID     string `gorm:"not null;index"`
	Title       string `gorm:"size:200"`
	Description string
	// Tags is stored as a comma separated list.
	Tags string

	// Relations
	Files []MediaFile `gorm:"foreignKey:ZoneID"`
}

// TagList splits the stored tags into a slice. Empty input yields nil.
func (z *Zone) TagList() []string {
	if z.Tags == "" {
		return nil
	}
	parts := strings.Split(z.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// SetTagList stores the slice as a comma separated list. Duplicates
// are dropped, first occurrence wins.
func (z *Zone) SetTagList(tags []string) {
	clean := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" && !seen[t] {
			seen[t] = true
			clean = append(clean, t)
		}
	}
	z.Tags = strings.Join(clean, ",")
}

// MediaFile is a single uploaded object. ZoneID is nil for ungrouped files.
type MediaFile struct {
	BaseModelWithDeleted
	EventID    string  `gorm:"not null;index"`
	ZoneID     *string `gorm:"index"`
	FileName   string  `gorm:"not null"`
	StorageKey string  `gorm:"not null"`
	URL        string
	MimeType   string
	Size       int64
}
