package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// ErrNotFound is returned when the requested itinerary does not exist.
var ErrNotFound = errors.New("itinerary not found")

// Repository defines the persistence contract for saved itineraries.
type Repository interface {
	SaveItinerary(ctx context.Context, req types.SaveItineraryRequest) (uuid.UUID, error)
	GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error)
	GetItineraries(ctx context.Context, page, pageSize int) ([]types.SavedItinerary, int, error)
	DeleteItinerary(ctx context.Context, id uuid.UUID) error
}

// DB is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	db     DB
}

func NewRepository(db DB, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		db:     db,
	}
}

func (r *RepositoryImpl) SaveItinerary(ctx context.Context, req types.SaveItineraryRequest) (uuid.UUID, error) {
	doc, err := json.Marshal(req.Itinerary)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal itinerary document: %w", err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, `
        INSERT INTO itineraries (title, start_date, end_date, itinerary)
        VALUES ($1, $2, $3, $4)
        RETURNING id`,
		req.Title, req.Dates.Start, req.Dates.End, doc,
	).Scan(&id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert itinerary", slog.Any("error", err))
		return uuid.Nil, fmt.Errorf("failed to save itinerary: %w", err)
	}
	return id, nil
}

func (r *RepositoryImpl) GetItinerary(ctx context.Context, id uuid.UUID) (*types.SavedItinerary, error) {
	var (
		saved     types.SavedItinerary
		doc       []byte
		startDate time.Time
		endDate   time.Time
	)
	err := r.db.QueryRow(ctx, `
        SELECT id, title, start_date, end_date, itinerary, created_at, updated_at
        FROM itineraries
        WHERE id = $1`,
		id,
	).Scan(&saved.ID, &saved.Title, &startDate, &endDate, &doc, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query itinerary", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}

	saved.Dates = types.DateRange{
		Start: startDate.Format("2006-01-02"),
		End:   endDate.Format("2006-01-02"),
	}
	if err := json.Unmarshal(doc, &saved.Itinerary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal itinerary document: %w", err)
	}
	return &saved, nil
}

func (r *RepositoryImpl) GetItineraries(ctx context.Context, page, pageSize int) ([]types.SavedItinerary, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM itineraries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count itineraries: %w", err)
	}

	offset := (page - 1) * pageSize
	rows, err := r.db.Query(ctx, `
        SELECT id, title, start_date, end_date, itinerary, created_at, updated_at
        FROM itineraries
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`,
		pageSize, offset,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query itineraries", slog.Any("error", err))
		return nil, 0, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	var itineraries []types.SavedItinerary
	for rows.Next() {
		var (
			saved     types.SavedItinerary
			doc       []byte
			startDate time.Time
			endDate   time.Time
		)
		if err := rows.Scan(&saved.ID, &saved.Title, &startDate, &endDate, &doc, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan itinerary row: %w", err)
		}
		saved.Dates = types.DateRange{
			Start: startDate.Format("2006-01-02"),
			End:   endDate.Format("2006-01-02"),
		}
		if err := json.Unmarshal(doc, &saved.Itinerary); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal itinerary document: %w", err)
		}
		itineraries = append(itineraries, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed reading itinerary rows: %w", err)
	}

	return itineraries, total, nil
}

func (r *RepositoryImpl) DeleteItinerary(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM itineraries WHERE id = $1`, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete itinerary", slog.Any("error", err))
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
