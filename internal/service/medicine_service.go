package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var ErrInvalidImage = errors.New("invalid image data")

const medicinePrompt = `You are an AI pharmacist assistant. Analyze the medicine image and provide the following information:
1. Name of the medicine
2. Type of medicine (e.g., antibiotic, painkiller, etc.)
3. Brief description of what it is
4. Typical dosage information
5. What diseases or conditions it's commonly used to treat

Format your response as a JSON object with the following structure:
{
  "name": "Medicine Name",
  "type": "Medicine Type",
  "description": "Brief description",
  "dosage": "Typical dosage information",
  "disease": "Diseases or conditions treated"
}

Only respond with the JSON object, no additional text.`

// MedicineInfo describes a medicine recognised from a photo.
type MedicineInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Dosage      string `json:"dosage"`
	Disease     string `json:"disease"`
}

type MedicineService struct {
	analyzer ImageAnalyzer
	log      *logrus.Logger
}

// NewMedicineService accepts a nil analyzer; Analyze then reports
// ErrInsightUnavailable.
func NewMedicineService(analyzer ImageAnalyzer, log *logrus.Logger) *MedicineService {
	return &MedicineService{analyzer: analyzer, log: log}
}

// Analyze identifies the medicine in a data URL such as
// "data:image/jpeg;base64,...".
func (s *MedicineService) Analyze(ctx context.Context, dataURL string) (*MedicineInfo, error) {
	format, image, err := DecodeImageDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	if s.analyzer == nil {
		return nil, ErrInsightUnavailable
	}

	text, err := s.analyzer.GenerateWithImage(ctx, medicinePrompt, format, image)
	if err != nil {
		s.log.Warnf("Failed to analyze medicine image: %+v", err)
		return nil, err
	}

	info, err := ParseMedicineInfo(text)
	if err != nil {
		s.log.Warnf("Unparseable medicine analysis: %q", text)
		return nil, err
	}
	return info, nil
}

// ParseMedicineInfo extracts the medicine object from a model answer.
func ParseMedicineInfo(text string) (*MedicineInfo, error) {
	var info MedicineInfo
	if err := decodeEmbeddedJSON(text, &info); err != nil {
		return nil, err
	}
	if strings.TrimSpace(info.Name) == "" {
		return nil, fmt.Errorf("%w: medicine name missing", ErrInsightParse)
	}
	return &info, nil
}

// DecodeImageDataURL splits a base64 image data URL into its subtype and bytes.
func DecodeImageDataURL(dataURL string) (string, []byte, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return "", nil, fmt.Errorf("%w: expected a base64 image data URL", ErrInvalidImage)
	}

	format := strings.TrimSuffix(strings.TrimPrefix(header, "data:image/"), ";base64")
	if format == "" {
		format = "jpeg"
	}

	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(image) == 0 {
		return "", nil, fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	return format, image, nil
}
