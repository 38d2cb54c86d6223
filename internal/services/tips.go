package services

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
)

// FallbackTip is returned when the advice file is missing or empty, so the
// daily broadcast never fails outright.
const FallbackTip = "Помните, что каждый ребенок уникален и развивается в своем темпе."

// TipService serves a random caregiving tip from a CSV file with a `tip`
// column. The file is re-read on every call, so editing it does not require
// a restart.
type TipService struct {
	path string
}

func NewTipService(path string) *TipService {
	return &TipService{path: path}
}

func (service *TipService) Random() string {
	tips, err := service.load()
	if err != nil || len(tips) == 0 {
		return FallbackTip
	}
	return tips[rand.Intn(len(tips))]
}

func (service *TipService) load() ([]string, error) {
	file, err := os.Open(service.path)
	if err != nil {
		return nil, fmt.Errorf("open advice file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read advice file: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	tipColumn := -1
	for index, header := range records[0] {
		if header == "tip" {
			tipColumn = index
			break
		}
	}
	if tipColumn == -1 {
		return nil, fmt.Errorf("advice file has no tip column")
	}

	tips := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if tipColumn < len(record) && record[tipColumn] != "" {
			tips = append(tips, record[tipColumn])
		}
	}
	return tips, nil
}
