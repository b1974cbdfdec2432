package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bvcfolio/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// created_at is compared lexicographically by List; the fixed-width
// fraction keeps that identical to chronological order within a second.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS holdings (
	holding_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	quantity REAL NOT NULL,
	real_avg_cost REAL NOT NULL,
	purchase_date TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

// NewSqliteHoldingRepository opens (or creates) the embedded store at
// path and ensures the schema exists. Unlike the Postgres store, ids
// and timestamps are assigned in-process.
func NewSqliteHoldingRepository(path string) (HoldingRepository, *sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open sqlite store %s: %w", path, err)
	}
	_, err = db.Exec(sqliteSchema)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("could not initialize sqlite schema: %w", err)
	}

	return sqliteHoldingRepositoryHandler{db}, db, nil
}

type sqliteHoldingRepositoryHandler struct {
	Db *sql.DB
}

func (h sqliteHoldingRepositoryHandler) Add(in domain.Holding) (*domain.Holding, error) {
	out := in
	out.HoldingID = uuid.New()
	out.CreatedAt = time.Now().UTC()

	_, err := h.Db.Exec(
		`INSERT INTO holdings (holding_id, symbol, quantity, real_avg_cost, purchase_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		out.HoldingID.String(),
		out.Symbol,
		out.Quantity.InexactFloat64(),
		out.RealAvgCost.InexactFloat64(),
		out.PurchaseDate.Format(time.DateOnly),
		out.CreatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert holding: %w", err)
	}

	return &out, nil
}

func (h sqliteHoldingRepositoryHandler) Get(id uuid.UUID) (*domain.Holding, error) {
	row := h.Db.QueryRow(
		`SELECT holding_id, symbol, quantity, real_avg_cost, purchase_date, created_at
		FROM holdings WHERE holding_id = ?`,
		id.String(),
	)
	holding, err := scanHoldingRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoldingNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get holding %s: %w", id, err)
	}

	return holding, nil
}

func (h sqliteHoldingRepositoryHandler) List() ([]domain.Holding, error) {
	rows, err := h.Db.Query(
		`SELECT holding_id, symbol, quantity, real_avg_cost, purchase_date, created_at
		FROM holdings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	holdings := []domain.Holding{}
	for rows.Next() {
		holding, err := scanHoldingRow(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, *holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	return holdings, nil
}

func (h sqliteHoldingRepositoryHandler) Update(in domain.Holding) error {
	res, err := h.Db.Exec(
		`UPDATE holdings SET symbol = ?, quantity = ?, real_avg_cost = ?, purchase_date = ?
		WHERE holding_id = ?`,
		in.Symbol,
		in.Quantity.InexactFloat64(),
		in.RealAvgCost.InexactFloat64(),
		in.PurchaseDate.Format(time.DateOnly),
		in.HoldingID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update holding %s: %w", in.HoldingID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrHoldingNotFound
	}

	return nil
}

func (h sqliteHoldingRepositoryHandler) Delete(id uuid.UUID) error {
	res, err := h.Db.Exec(`DELETE FROM holdings WHERE holding_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete holding %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrHoldingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHoldingRow(row rowScanner) (*domain.Holding, error) {
	var (
		id           string
		symbol       string
		quantity     float64
		realAvgCost  float64
		purchaseDate string
		createdAt    string
	)
	err := row.Scan(&id, &symbol, &quantity, &realAvgCost, &purchaseDate, &createdAt)
	if err != nil {
		return nil, err
	}

	holdingID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("malformed holding id %s: %w", id, err)
	}
	parsedPurchase, err := time.Parse(time.DateOnly, purchaseDate)
	if err != nil {
		return nil, fmt.Errorf("malformed purchase date %s: %w", purchaseDate, err)
	}
	parsedCreated, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("malformed created at %s: %w", createdAt, err)
	}

	return &domain.Holding{
		HoldingID:    holdingID,
		Symbol:       symbol,
		Quantity:     decimal.NewFromFloat(quantity),
		RealAvgCost:  decimal.NewFromFloat(realAvgCost),
		PurchaseDate: parsedPurchase,
		CreatedAt:    parsedCreated,
	}, nil
}
