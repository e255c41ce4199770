package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"civicmap/backend/report"
	"civicmap/common"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
)

const reportColumns = "id, title, description, category, status, auto_categorized, image_url, lat, lng, created_at"

// ReportStore is the MySQL implementation of report.Repository.
type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

func (s *ReportStore) Create(ctx context.Context, r *report.Report) error {
	result, err := s.db.ExecContext(ctx, `INSERT
	  INTO reports (`+reportColumns+`)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Description, string(r.Category), string(r.Status),
		r.AutoCategorized, r.ImageURL, r.Lat, r.Lng, r.CreatedAt)
	common.LogResult("create report", result, err, true)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

func (s *ReportStore) Get(ctx context.Context, id string) (*report.Report, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE id = ?", id)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, report.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}
	return r, nil
}

func (s *ReportStore) ListSince(ctx context.Context, since time.Time, limit int) ([]report.Report, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+reportColumns+`
	  FROM reports
	  WHERE created_at >= ?
	  ORDER BY created_at DESC
	  LIMIT ?`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []report.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return out, nil
}

func (s *ReportStore) SetStatus(ctx context.Context, id string, st report.Status) (*report.Report, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE reports SET status = ? WHERE id = ?", string(st), id)
	if err != nil {
		return nil, fmt.Errorf("set status of %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("set status of %s: %w", id, err)
	}
	if rows == 0 {
		// Either the id is unknown or the status already matched; a read
		// tells them apart.
		return s.Get(ctx, id)
	}
	log.Infof("report %s status set to %s", id, st)
	return s.Get(ctx, id)
}

func (s *ReportStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	if rows == 0 {
		return report.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*report.Report, error) {
	var r report.Report
	var category, status string
	if err := row.Scan(&r.ID, &r.Title, &r.Description, &category, &status,
		&r.AutoCategorized, &r.ImageURL, &r.Lat, &r.Lng, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Category = report.Category(category)
	r.Status = report.Status(status)
	return &r, nil
}
