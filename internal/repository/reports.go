package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/resumeats-api/internal/model"
)

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Create stores one analysis run and returns it with id and timestamp filled.
func (r *ReportRepo) Create(ctx context.Context, report *model.AnalysisReport) (*model.AnalysisReport, error) {
	var saved model.AnalysisReport
	err := r.pool.QueryRow(ctx, `
		INSERT INTO analysis_reports
			(filename, before_score, after_score, word_count, sections_found,
			 has_contact, note, ai_enhanced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, filename, before_score, after_score, word_count,
		          sections_found, has_contact, note, ai_enhanced, created_at
	`, report.Filename, report.BeforeScore, report.AfterScore, report.WordCount,
		report.SectionsFound, report.HasContact, report.Note, report.AIEnhanced,
	).Scan(
		&saved.ID, &saved.Filename, &saved.BeforeScore, &saved.AfterScore,
		&saved.WordCount, &saved.SectionsFound, &saved.HasContact,
		&saved.Note, &saved.AIEnhanced, &saved.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating analysis report: %w", err)
	}
	return &saved, nil
}

// FindByID looks up a single report
func (r *ReportRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AnalysisReport, error) {
	var report model.AnalysisReport
	err := r.pool.QueryRow(ctx, `
		SELECT id, filename, before_score, after_score, word_count,
		       sections_found, has_contact, note, ai_enhanced, created_at
		FROM analysis_reports
		WHERE id = $1
	`, id).Scan(
		&report.ID, &report.Filename, &report.BeforeScore, &report.AfterScore,
		&report.WordCount, &report.SectionsFound, &report.HasContact,
		&report.Note, &report.AIEnhanced, &report.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding analysis report: %w", err)
	}
	return &report, nil
}

// ListRecent returns the newest reports, newest first
func (r *ReportRepo) ListRecent(ctx context.Context, limit int) ([]model.AnalysisReport, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, filename, before_score, after_score, word_count,
		       sections_found, has_contact, note, ai_enhanced, created_at
		FROM analysis_reports
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing analysis reports: %w", err)
	}
	defer rows.Close()

	reports := []model.AnalysisReport{}
	for rows.Next() {
		var report model.AnalysisReport
		if err := rows.Scan(
			&report.ID, &report.Filename, &report.BeforeScore, &report.AfterScore,
			&report.WordCount, &report.SectionsFound, &report.HasContact,
			&report.Note, &report.AIEnhanced, &report.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning analysis report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analysis reports: %w", err)
	}

	return reports, nil
}
