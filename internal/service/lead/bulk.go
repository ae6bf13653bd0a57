package lead

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/access"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

const defaultImportSource = "Imported"

// ImportError describes a skipped spreadsheet row.
type ImportError struct {
	Line   int
	Reason string
}

// ImportResult summarizes a spreadsheet import.
type ImportResult struct {
	Count   int
	Skipped int
	Errors  []ImportError
}

// ExportResult is an encoded spreadsheet of leads.
type ExportResult struct {
	Data  []byte
	Count int
}

// Import creates a lead for every usable row of the uploaded spreadsheet.
// Rows that would fail Create's validation are skipped and reported. All rows are written in one
// transaction, in chunks.
func (s *Service) Import(ctx context.Context, caller domain.Caller, file io.Reader) (*ImportResult, error) {
	if err := access.Require(caller, domain.CapImportLeads); err != nil {
		return nil, err
	}

	rows, err := s.sheets.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("lead.Import decode: %w", err)
	}
	if s.cfg.ImportMaxRows > 0 && len(rows) > s.cfg.ImportMaxRows {
		return nil, domain.NewValidationError("file", fmt.Sprintf("at most %d rows per import", s.cfg.ImportMaxRows))
	}

	now := s.clock.Now().UTC()
	result := &ImportResult{}
	leads := make([]domain.Lead, 0, len(rows))
	for _, row := range rows {
		input := CreateLeadInput{
			Name:   row.Name,
			Email:  row.Email,
			Phone:  row.Phone,
			Source: row.Source,
		}
		input.normalize()
		if err := input.Validate(); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Line: row.Line, Reason: importReason(err)})
			continue
		}
		if input.Source == "" {
			input.Source = defaultImportSource
		}
		leads = append(leads, domain.Lead{
			ID:        uuid.New(),
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			Source:    input.Source,
			Status:    domain.LeadStatusNew,
			Tags:      []string{},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if len(leads) == 0 {
		return result, nil
	}

	chunkSize := s.cfg.ImportChunkSize
	if chunkSize <= 0 {
		chunkSize = 200
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for start := 0; start < len(leads); start += chunkSize {
			end := min(start+chunkSize, len(leads))
			n, err := s.leads.CreateMany(txCtx, leads[start:end])
			if err != nil {
				return fmt.Errorf("insert rows %d-%d: %w", start+1, end, err)
			}
			result.Count += n
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("lead.Import: %w", err)
	}

	s.activity.Record(ctx, caller.ID, domain.ActionImportLeads, fmt.Sprintf("Imported %d leads", result.Count))
	s.invalidateStats(ctx)
	s.log.InfoContext(ctx, "leads imported",
		slog.String("user_id", caller.ID.String()),
		slog.Int("count", result.Count),
		slog.Int("skipped", result.Skipped))

	return result, nil
}

func importReason(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Summary()
	}
	return err.Error()
}

// Export encodes the leads caller may read, narrowed by req, as a
// spreadsheet. Paging parameters in req are ignored.
func (s *Service) Export(ctx context.Context, caller domain.Caller, req access.ListRequest) (*ExportResult, error) {
	q := access.BuildListQuery(caller, req, s.paging())

	limit := s.cfg.ExportMaxRows
	if limit <= 0 {
		limit = 10000
	}
	leads, err := s.leads.ListForExport(ctx, q.Filter, limit)
	if err != nil {
		return nil, fmt.Errorf("lead.Export: %w", err)
	}

	var buf bytes.Buffer
	if err := s.sheets.Encode(&buf, leads); err != nil {
		return nil, fmt.Errorf("lead.Export encode: %w", err)
	}

	s.activity.Record(ctx, caller.ID, domain.ActionExportLeads, fmt.Sprintf("Exported %d leads", len(leads)))
	s.log.InfoContext(ctx, "leads exported",
		slog.String("user_id", caller.ID.String()),
		slog.Int("count", len(leads)))

	return &ExportResult{Data: buf.Bytes(), Count: len(leads)}, nil
}
