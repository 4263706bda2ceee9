package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"conversion-engine/internal/core"
	"conversion-engine/internal/repo"
)

type appService struct {
	pool      *pgxpool.Pool
	engine    *core.Engine
	packaging *repo.PackagingRepo
}

// NewAppService wires the Postgres masters into the engine and returns the
// application facade.
func NewAppService(pool *pgxpool.Pool) ApplicationService {
	packaging := repo.NewPackagingRepo(pool)
	products := repo.NewProductRepo(pool)
	return &appService{
		pool:      pool,
		engine:    core.NewEngine(packaging, products),
		packaging: packaging,
	}
}

func (s *appService) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	result, err := s.engine.Convert(ctx, core.ConversionRequest{
		CommercialQty:   req.CommercialQty,
		CommercialUnit:  req.CommercialUnit,
		ProductCode:     req.ProductCode,
		PackagingTypeID: req.PackagingTypeID,
		DensityOverride: req.DensityOverride,
		Context:         req.Context,
		ExistingDensity: req.ExistingDensity,
	})
	if err != nil {
		return nil, err
	}

	id, err := s.saveConversion(ctx, req, result)
	if err != nil {
		return nil, err
	}
	return &ConvertResult{ConversionID: id, Result: result}, nil
}

// saveConversion stores the result verbatim, breakdown included. The stored
// density columns are what Replay later feeds back as the frozen value.
func (s *appService) saveConversion(ctx context.Context, req ConvertRequest, result *core.ConversionResult) (string, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode conversion result: %w", err)
	}

	var (
		densityValue      *decimal.Decimal
		densitySource     *string
		densityCapturedAt *time.Time
	)
	if result.Density != nil {
		densityValue = &result.Density.DensityKgPerLiter
		src := string(result.Density.Source)
		densitySource = &src
		at := result.Density.CapturedAt
		densityCapturedAt = &at
	}

	id := uuid.New().String()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO conversion_log (
			id, product_code, commercial_qty, commercial_unit, packaging_type_id,
			transaction_context, density_kg_per_liter, density_source, density_captured_at,
			accounting_qty_kg, is_reversible, result
		)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12)
	`, id, req.ProductCode, result.CommercialQty, string(result.CommercialUnit), req.PackagingTypeID,
		string(req.Context), densityValue, densitySource, densityCapturedAt,
		result.AccountingQtyKg, result.IsReversible, resultJSON,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record conversion: %w", err)
	}
	return id, nil
}

func (s *appService) Replay(ctx context.Context, conversionID string) (*ReplayResult, error) {
	var (
		rep        ReplayResult
		req        core.ConversionRequest
		pkgID      *string
		txContext  string
		densityVal *decimal.Decimal
		densitySrc *string
		capturedAt *time.Time
	)
	err := s.pool.QueryRow(ctx, `
		SELECT product_code, commercial_qty, commercial_unit, packaging_type_id,
		       transaction_context, density_kg_per_liter, density_source, density_captured_at,
		       accounting_qty_kg, created_at
		FROM conversion_log
		WHERE id = $1
	`, conversionID).Scan(
		&req.ProductCode, &req.CommercialQty, &req.CommercialUnit, &pkgID,
		&txContext, &densityVal, &densitySrc, &capturedAt,
		&rep.StoredKg, &rep.RecordedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("conversion %s not found in the conversion log", conversionID)
		}
		return nil, fmt.Errorf("failed to load conversion %s: %w", conversionID, err)
	}

	req.Context = core.TransactionContext(txContext)
	if pkgID != nil {
		req.PackagingTypeID = *pkgID
	}
	if densityVal != nil {
		info := core.DensityInfo{DensityKgPerLiter: *densityVal, Source: core.DensityFrozen}
		if densitySrc != nil {
			info.Source = core.DensitySource(*densitySrc)
		}
		if capturedAt != nil {
			info.CapturedAt = *capturedAt
		}
		req.ExistingDensity = &info
	}

	recomputed, err := s.engine.Convert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("replay of conversion %s failed: %w", conversionID, err)
	}

	rep.ConversionID = conversionID
	rep.Recomputed = recomputed
	rep.Match = recomputed.AccountingQtyKg.Equal(rep.StoredKg)
	return &rep, nil
}

func (s *appService) ListPackagingTypes(ctx context.Context) ([]PackagingTypeInfo, error) {
	records, err := s.packaging.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]PackagingTypeInfo, 0, len(records))
	for _, rec := range records {
		infos = append(infos, PackagingTypeInfo{
			PackagingTypeID:    rec.PackagingTypeID,
			Name:               rec.Name,
			CapacityLiters:     rec.CapacityLiters,
			NetWeightKgDefault: rec.NetWeightKgDefault,
		})
	}
	return infos, nil
}

func (s *appService) ConvertWithFixedFactor(_ context.Context, _ string, _, _ decimal.Decimal) (*ConvertResult, error) {
	return nil, &core.LegacyFallbackBlockedError{Operation: "convert_with_fixed_factor"}
}
