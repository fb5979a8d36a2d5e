package entity

import "time"

// DocumentRecord is the metadata of an uploaded medical document. The file
// itself lives in an external object store; RemoteURL/RemoteID point at it
// and Preview may hold an embedded data-URL thumbnail for images.
type DocumentRecord struct {
	ID         string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(255);not null;index" json:"user_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Type       string    `gorm:"type:varchar(100);not null" json:"type"`
	Category   string    `gorm:"type:varchar(100)" json:"category"`
	FileType   string    `gorm:"type:varchar(100)" json:"file_type,omitempty"`
	FileSize   string    `gorm:"type:varchar(50)" json:"file_size"`
	RemoteURL  string    `gorm:"type:text" json:"remote_url,omitempty"`
	RemoteID   string    `gorm:"type:varchar(255)" json:"remote_id,omitempty"`
	Preview    string    `gorm:"type:text" json:"preview,omitempty"`
	UploadDate time.Time `gorm:"not null;index" json:"upload_date"`
}

func (DocumentRecord) TableName() string {
	return "document_records"
}

// HasRemoteCopy reports whether the file was pushed to the external store.
func (d *DocumentRecord) HasRemoteCopy() bool {
	return d.RemoteURL != ""
}
