package converter

import (
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/entity"
)

// DocumentToResponse converts a DocumentRecord entity to DocumentResponse DTO
func DocumentToResponse(doc *entity.DocumentRecord) *dto.DocumentResponse {
	if doc == nil {
		return nil
	}

	return &dto.DocumentResponse{
		ID:         doc.ID,
		Name:       doc.Name,
		Type:       doc.Type,
		Category:   doc.Category,
		FileType:   doc.FileType,
		FileSize:   doc.FileSize,
		RemoteURL:  doc.RemoteURL,
		RemoteID:   doc.RemoteID,
		Preview:    doc.Preview,
		UploadDate: doc.UploadDate,
	}
}

func DocumentsToResponses(docs []entity.DocumentRecord) []dto.DocumentResponse {
	responses := make([]dto.DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = *DocumentToResponse(&docs[i])
	}
	return responses
}
