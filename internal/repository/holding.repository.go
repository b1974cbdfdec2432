package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bvcfolio/internal/db/models/postgres/public/model"
	"bvcfolio/internal/db/models/postgres/public/table"
	"bvcfolio/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrHoldingNotFound = errors.New("holding not found")

// HoldingRepository is the persistence boundary for lots. The store owns
// HoldingID and CreatedAt; every call is a single atomic statement.
// Callers must not care whether the Postgres or the embedded sqlite
// implementation is active.
type HoldingRepository interface {
	Add(domain.Holding) (*domain.Holding, error)
	Get(uuid.UUID) (*domain.Holding, error)
	List() ([]domain.Holding, error)
	Update(domain.Holding) error
	Delete(uuid.UUID) error
}

func NewHoldingRepository(db *sql.DB) HoldingRepository {
	return holdingRepositoryHandler{db}
}

type holdingRepositoryHandler struct {
	Db *sql.DB
}

func holdingFromModel(m model.Holding) domain.Holding {
	return domain.Holding{
		HoldingID:    m.HoldingID,
		Symbol:       m.Symbol,
		Quantity:     decimal.NewFromFloat(m.Quantity),
		RealAvgCost:  decimal.NewFromFloat(m.RealAvgCost),
		PurchaseDate: m.PurchaseDate,
		CreatedAt:    m.CreatedAt,
	}
}

func (h holdingRepositoryHandler) Add(in domain.Holding) (*domain.Holding, error) {
	m := model.Holding{
		Symbol:       in.Symbol,
		Quantity:     in.Quantity.InexactFloat64(),
		RealAvgCost:  in.RealAvgCost.InexactFloat64(),
		PurchaseDate: in.PurchaseDate,
		CreatedAt:    time.Now().UTC(),
	}

	query := table.Holding.
		INSERT(table.Holding.MutableColumns).
		MODEL(m).
		RETURNING(table.Holding.AllColumns)

	out := model.Holding{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert holding: %w", err)
	}

	holding := holdingFromModel(out)
	return &holding, nil
}

func (h holdingRepositoryHandler) Get(id uuid.UUID) (*domain.Holding, error) {
	query := table.Holding.
		SELECT(table.Holding.AllColumns).
		WHERE(table.Holding.HoldingID.EQ(postgres.UUID(id)))

	out := model.Holding{}
	err := query.Query(h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, ErrHoldingNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get holding %s: %w", id, err)
	}

	holding := holdingFromModel(out)
	return &holding, nil
}

func (h holdingRepositoryHandler) List() ([]domain.Holding, error) {
	query := table.Holding.
		SELECT(table.Holding.AllColumns).
		ORDER_BY(table.Holding.CreatedAt.DESC())

	out := []model.Holding{}
	err := query.Query(h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	holdings := make([]domain.Holding, 0, len(out))
	for _, m := range out {
		holdings = append(holdings, holdingFromModel(m))
	}

	return holdings, nil
}

func (h holdingRepositoryHandler) Update(in domain.Holding) error {
	query := table.Holding.UPDATE(
		table.Holding.Symbol,
		table.Holding.Quantity,
		table.Holding.RealAvgCost,
		table.Holding.PurchaseDate,
	).SET(
		postgres.String(in.Symbol),
		postgres.Float(in.Quantity.InexactFloat64()),
		postgres.Float(in.RealAvgCost.InexactFloat64()),
		postgres.DateT(in.PurchaseDate),
	).WHERE(
		table.Holding.HoldingID.EQ(postgres.UUID(in.HoldingID)),
	)

	res, err := query.Exec(h.Db)
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

func (h holdingRepositoryHandler) Delete(id uuid.UUID) error {
	query := table.Holding.
		DELETE().
		WHERE(table.Holding.HoldingID.EQ(postgres.UUID(id)))

	res, err := query.Exec(h.Db)
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
