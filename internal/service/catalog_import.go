package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

// CatalogImportService seeds the screener universe from a symbols CSV with
// header symbol,name,type,country,sector. Runs once at startup; rows already
// present are refreshed in place.
type CatalogImportService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (s *CatalogImportService) ImportFile(ctx context.Context, path string) (int, error) {
	if s == nil || s.Repo == nil || path == "" {
		return 0, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()
	return s.importReader(ctx, f)
}

func (s *CatalogImportService) importReader(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	symbolCol, ok := idx["symbol"]
	if !ok {
		return 0, fmt.Errorf("catalog header missing symbol column")
	}
	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		rows  []models.CatalogSymbol
		total int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("failed to read catalog row: %w", err)
		}
		if symbolCol >= len(record) {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(record[symbolCol]))
		if symbol == "" {
			continue
		}
		rows = append(rows, models.CatalogSymbol{
			Symbol:  symbol,
			Name:    field(record, "name"),
			Type:    strings.ToLower(field(record, "type")),
			Country: field(record, "country"),
			Sector:  field(record, "sector"),
		})
		if len(rows) >= 200 {
			if err := s.Repo.UpsertCatalogSymbols(ctx, rows); err != nil {
				return total, err
			}
			total += len(rows)
			rows = rows[:0]
		}
	}
	if len(rows) > 0 {
		if err := s.Repo.UpsertCatalogSymbols(ctx, rows); err != nil {
			return total, err
		}
		total += len(rows)
	}
	if s.Logger != nil {
		s.Logger.Info("symbol catalog imported", zap.Int("symbols", total))
	}
	return total, nil
}
