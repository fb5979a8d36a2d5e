package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	text   string
	err    error
	format string
	image  []byte
	prompt string
}

func (a *fakeAnalyzer) GenerateWithImage(_ context.Context, prompt, format string, image []byte) (string, error) {
	a.prompt, a.format, a.image = prompt, format, image
	return a.text, a.err
}

const paracetamolJSON = `{"name":"Paracetamol","type":"Analgesic","description":"Pain reliever","dosage":"500mg every 6 hours","disease":"Fever, headache"}`

func imageDataURL(format string, data []byte) string {
	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func TestParseMedicineInfo(t *testing.T) {
	info, err := ParseMedicineInfo("```json\n" + paracetamolJSON + "\n```")
	require.NoError(t, err)
	assert.Equal(t, &MedicineInfo{
		Name:        "Paracetamol",
		Type:        "Analgesic",
		Description: "Pain reliever",
		Dosage:      "500mg every 6 hours",
		Disease:     "Fever, headache",
	}, info)
}

func TestParseMedicineInfo_Errors(t *testing.T) {
	for _, text := range []string{"I cannot identify this medicine.", `{"name": }`, `{"type":"Analgesic"}`} {
		_, err := ParseMedicineInfo(text)
		assert.ErrorIs(t, err, ErrInsightParse, text)
	}
}

func TestDecodeImageDataURL(t *testing.T) {
	format, image, err := DecodeImageDataURL(imageDataURL("png", []byte{0x89, 'P', 'N', 'G'}))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, image)

	for _, in := range []string{
		"",
		"aGVsbG8=",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/jpeg,aGVsbG8=",
		"data:image/jpeg;base64,not base64!",
		"data:image/jpeg;base64,",
	} {
		_, _, err := DecodeImageDataURL(in)
		assert.ErrorIs(t, err, ErrInvalidImage, in)
	}
}

func TestMedicineService_Analyze(t *testing.T) {
	analyzer := &fakeAnalyzer{text: "Here you go: " + paracetamolJSON}
	svc := NewMedicineService(analyzer, quietLogger())

	info, err := svc.Analyze(context.Background(), imageDataURL("jpeg", []byte("pill")))
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", info.Name)
	assert.Equal(t, "jpeg", analyzer.format)
	assert.Equal(t, []byte("pill"), analyzer.image)
	assert.Contains(t, analyzer.prompt, "AI pharmacist assistant")
}

func TestMedicineService_Errors(t *testing.T) {
	ctx := context.Background()
	image := imageDataURL("jpeg", []byte("pill"))

	_, err := NewMedicineService(nil, quietLogger()).Analyze(ctx, image)
	assert.ErrorIs(t, err, ErrInsightUnavailable)

	_, err = NewMedicineService(&fakeAnalyzer{}, quietLogger()).Analyze(ctx, "data:image/jpeg;base64,%%%")
	assert.ErrorIs(t, err, ErrInvalidImage)

	boom := errors.New("upstream down")
	_, err = NewMedicineService(&fakeAnalyzer{err: boom}, quietLogger()).Analyze(ctx, image)
	assert.ErrorIs(t, err, boom)

	_, err = NewMedicineService(&fakeAnalyzer{text: "no idea"}, quietLogger()).Analyze(ctx, image)
	assert.ErrorIs(t, err, ErrInsightParse)
}
