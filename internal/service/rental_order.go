package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/logger"
	"rental-pricing-backend/internal/pricing"
	"rental-pricing-backend/internal/repository"
)

// driftScanWorkers bounds how many orders the drift audit loads at once.
const driftScanWorkers = 4

var editableOrderFields = domain.NewFieldSet(domain.FieldAnalyticAccountID)

type rentalOrderService struct {
	orderRepo    repository.OrderRepository
	lineRepo     repository.OrderLineRepository
	activityRepo repository.ActivityRepository
	recalculator *pricing.Recalculator

	defaultTimezone string
	defaultLanguage string
}

func NewRentalOrderService(
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	activityRepo repository.ActivityRepository,
	recalculator *pricing.Recalculator,
	defaultTimezone, defaultLanguage string,
) RentalOrderService {
	return &rentalOrderService{
		orderRepo:       orderRepo,
		lineRepo:        lineRepo,
		activityRepo:    activityRepo,
		recalculator:    recalculator,
		defaultTimezone: defaultTimezone,
		defaultLanguage: defaultLanguage,
	}
}

func (s *rentalOrderService) GetOrder(ctx context.Context, orderID int32) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

func (s *rentalOrderService) labelOptions(order *domain.Order) pricing.LabelOptions {
	opts, err := pricing.LabelOptionsFor(order, s.defaultTimezone, s.defaultLanguage)
	if err != nil {
		logger.Warn("Falling back to default label locale", "orderID", order.ID, "error", err)
	}
	return opts
}

func (s *rentalOrderService) UpdateLine(ctx context.Context, orderID, lineID int32, changes map[string]any, mode pricing.Mode) (*LineUpdate, error) {
	logger.EnterMethod("rentalOrderService.UpdateLine", "orderID", orderID, "lineID", lineID, "mode", mode.String())

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.ExitMethodWithError("rentalOrderService.UpdateLine", err, "orderID", orderID)
		return nil, err
	}
	line := order.Line(lineID)
	if line == nil {
		err := fmt.Errorf("line %d of order %d: %w", lineID, orderID, repository.ErrNotFound)
		logger.ExitMethodWithError("rentalOrderService.UpdateLine", err, "orderID", orderID)
		return nil, err
	}

	opts := s.labelOptions(order)
	changed, err := applyLineChanges(line, changes, opts.Location)
	if err != nil {
		logger.ExitMethodWithError("rentalOrderService.UpdateLine", err, "orderID", orderID, "lineID", lineID)
		return nil, err
	}

	update := &LineUpdate{Line: line, Changed: changed.Sorted()}
	recomputed, err := s.recalculator.Recalculate(ctx, order, line, pricing.Edit{Changed: changed, Mode: mode, Label: opts})
	if err != nil {
		// The edit itself is kept; derived fields of failed rules stay as they were.
		logger.Warn("Line saved without full recomputation", "orderID", orderID, "lineID", lineID, "error", err)
		update.Warnings = ruleWarnings(err)
	}
	update.Recomputed = recomputed.Sorted()

	if err := s.lineRepo.Update(ctx, line); err != nil {
		logger.ExitMethodWithError("rentalOrderService.UpdateLine", err, "orderID", orderID, "lineID", lineID)
		return nil, err
	}

	logger.ExitMethod("rentalOrderService.UpdateLine", "orderID", orderID, "lineID", lineID, "recomputed", update.Recomputed)
	return update, nil
}

// AddLine appends a line built from values to the order. The new line gets
// the same rule pass as an edit of those fields, and every line is
// reallocated to the order's analytic account when it has one.
func (s *rentalOrderService) AddLine(ctx context.Context, orderID int32, values map[string]any, mode pricing.Mode) (*LineUpdate, error) {
	logger.EnterMethod("rentalOrderService.AddLine", "orderID", orderID, "mode", mode.String())

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.ExitMethodWithError("rentalOrderService.AddLine", err, "orderID", orderID)
		return nil, err
	}

	opts := s.labelOptions(order)
	line := domain.OrderLine{OrderID: orderID, ProductUomQty: 1}
	changed, err := applyLineChanges(&line, values, opts.Location)
	if err != nil {
		logger.ExitMethodWithError("rentalOrderService.AddLine", err, "orderID", orderID)
		return nil, err
	}
	order.Lines = append(order.Lines, line)
	added := &order.Lines[len(order.Lines)-1]

	update := &LineUpdate{Line: added, Changed: changed.Sorted()}
	recomputed, err := s.recalculator.Recalculate(ctx, order, added, pricing.Edit{Changed: changed, Mode: mode, Label: opts})
	if err != nil {
		logger.Warn("Line added without full recomputation", "orderID", orderID, "error", err)
		update.Warnings = ruleWarnings(err)
	}
	if pricing.ApplyAnalyticDistribution(order) {
		recomputed.Add(domain.FieldAnalyticDistribution)
	}
	update.Recomputed = recomputed.Sorted()

	if err := s.orderRepo.Save(ctx, order); err != nil {
		logger.ExitMethodWithError("rentalOrderService.AddLine", err, "orderID", orderID)
		return nil, err
	}

	logger.ExitMethod("rentalOrderService.AddLine", "orderID", orderID, "lineID", added.ID)
	return update, nil
}

func ruleWarnings(err error) []string {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	warnings := make([]string, 0, len(errs))
	for _, e := range errs {
		warnings = append(warnings, e.Error())
	}
	return warnings
}

func (s *rentalOrderService) UpdateOrder(ctx context.Context, orderID int32, changes map[string]any) (*domain.Order, error) {
	logger.EnterMethod("rentalOrderService.UpdateOrder", "orderID", orderID)

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.ExitMethodWithError("rentalOrderService.UpdateOrder", err, "orderID", orderID)
		return nil, err
	}

	edited := *order
	changed, err := decode(changes, &edited, editableOrderFields, nil)
	if err != nil {
		logger.ExitMethodWithError("rentalOrderService.UpdateOrder", err, "orderID", orderID)
		return nil, err
	}
	order.AnalyticAccountID = edited.AnalyticAccountID

	if changed.Has(domain.FieldAnalyticAccountID) && pricing.ApplyAnalyticDistribution(order) {
		logger.Debug("Analytic distribution propagated", "orderID", orderID, "lines", len(order.Lines))
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		logger.ExitMethodWithError("rentalOrderService.UpdateOrder", err, "orderID", orderID)
		return nil, err
	}

	logger.ExitMethod("rentalOrderService.UpdateOrder", "orderID", orderID)
	return order, nil
}

func (s *rentalOrderService) UpdateRentalPrices(ctx context.Context, orderID int32) (*domain.Order, error) {
	logger.EnterMethod("rentalOrderService.UpdateRentalPrices", "orderID", orderID)

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.ExitMethodWithError("rentalOrderService.UpdateRentalPrices", err, "orderID", orderID)
		return nil, err
	}

	recomputed, err := s.recalculator.UpdateRentalPrices(ctx, order)
	if err != nil {
		logger.ExitMethodWithError("rentalOrderService.UpdateRentalPrices", err, "orderID", orderID)
		return nil, err
	}
	if !recomputed {
		logger.Info("Order has no rental duration, line rates left unchanged", "orderID", orderID)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		logger.ExitMethodWithError("rentalOrderService.UpdateRentalPrices", err, "orderID", orderID)
		return nil, err
	}

	if err := s.activityRepo.PostNote(ctx, orderID, RentalPricesRecomputedNote); err != nil {
		logger.Error("Failed to post recompute note", "orderID", orderID, "error", err)
	}

	logger.ExitMethod("rentalOrderService.UpdateRentalPrices", "orderID", orderID, "recomputed", recomputed)
	return order, nil
}

func (s *rentalOrderService) FindPriceDrift(ctx context.Context, tolerance float64) ([]pricing.Drift, error) {
	ids, err := s.orderRepo.ListRentalOrderIDs(ctx)
	if err != nil {
		return nil, err
	}

	perOrder := make([][]pricing.Drift, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(driftScanWorkers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			order, err := s.orderRepo.GetByID(gctx, id)
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load order %d: %w", id, err)
			}
			for j := range order.Lines {
				if d, ok := pricing.CheckDrift(order, &order.Lines[j], tolerance); ok {
					perOrder[i] = append(perOrder[i], d)
				}
			}
			return nil
		})
	}
	err = g.Wait()

	var drifts []pricing.Drift
	for _, d := range perOrder {
		drifts = append(drifts, d...)
	}
	return drifts, err
}
