package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"inventario/internal/inventory"
	"inventario/internal/models"
)

// CSVContentType is the MIME type of an export.
const CSVContentType = "text/csv; charset=utf-8"

// Sharer hands an export to whoever it is shared with.
type Sharer interface {
	Share(ctx context.Context, filename string, payload []byte) error
}

// ProductSource provides the product snapshot and the current time.
type ProductSource interface {
	Snapshot() []models.Product
	Now() time.Time
}

// Export is a rendered export file.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders the inventory as CSV and shares it.
type ExportService struct {
	products ProductSource
	sharer   Sharer
}

// NewExportService creates a new ExportService. A nil sharer disables sharing.
func NewExportService(products ProductSource, sharer Sharer) *ExportService {
	return &ExportService{
		products: products,
		sharer:   sharer,
	}
}

// Export renders the whole collection in its stored order.
func (s *ExportService) Export(ctx context.Context) (Export, error) {
	if err := ctx.Err(); err != nil {
		return Export{}, err
	}
	content, err := inventory.ToCSV(s.products.Snapshot())
	if err != nil {
		return Export{}, fmt.Errorf("failed to render export: %w", err)
	}
	return Export{
		Filename:    inventory.ExportFilename(s.products.Now()),
		ContentType: CSVContentType,
		Content:     content,
	}, nil
}

// Share renders the export and hands it to the sharer.
func (s *ExportService) Share(ctx context.Context) (Export, error) {
	if s.sharer == nil {
		return Export{}, ErrShareUnavailable
	}
	export, err := s.Export(ctx)
	if err != nil {
		return Export{}, err
	}
	if err := s.sharer.Share(ctx, export.Filename, export.Content); err != nil {
		log.Printf("Error sharing export %s: %v", export.Filename, err)
		return Export{}, fmt.Errorf("%w: %w", ErrShareUnavailable, err)
	}
	log.Printf("Shared export %s (%d bytes)", export.Filename, len(export.Content))
	return export, nil
}
