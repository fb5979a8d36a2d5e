package dto

import "time"

// Request DTOs

type CreateDocumentRequest struct {
	ID         string     `json:"id" validate:"omitempty,max=64,excludesall=:"`
	Name       string     `json:"name" validate:"required,max=255"`
	Type       string     `json:"type" validate:"required,max=100"`
	Category   string     `json:"category" validate:"max=100"`
	FileType   string     `json:"file_type" validate:"max=100"`
	FileSize   string     `json:"file_size" validate:"max=50"`
	RemoteURL  string     `json:"remote_url" validate:"omitempty,url"`
	RemoteID   string     `json:"remote_id" validate:"max=255"`
	Preview    string     `json:"preview" validate:"omitempty,startswith=data:"`
	UploadDate *time.Time `json:"upload_date"`
}

// Response DTOs

type DocumentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Category   string    `json:"category"`
	FileType   string    `json:"file_type,omitempty"`
	FileSize   string    `json:"file_size"`
	RemoteURL  string    `json:"remote_url,omitempty"`
	RemoteID   string    `json:"remote_id,omitempty"`
	Preview    string    `json:"preview,omitempty"`
	UploadDate time.Time `json:"upload_date"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int                `json:"total"`
}
