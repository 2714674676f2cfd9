// Package purchasing implementa los casos de uso del motor de conciliación de
// compras: cobertura de solicitudes, recepción de órdenes y las transiciones
// de estado de ambos documentos.
package purchasing

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
	domainpurch "github.com/tallersur/taller-api/internal/domain/purchasing"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

// UseCase opera solicitudes y órdenes de compra. Los pendientes nunca se
// persisten: se derivan en cada lectura desde los documentos y el libro.
type UseCase struct {
	txRunner   TxRunner
	reqRepo    repository.PurchaseRequestRepository
	orderRepo  repository.PurchaseOrderRepository
	ledgerRepo repository.LedgerRepository
	pdfGen     OrderPDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	reqRepo repository.PurchaseRequestRepository,
	orderRepo repository.PurchaseOrderRepository,
	ledgerRepo repository.LedgerRepository,
	pdfGen OrderPDFGenerator,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		reqRepo:    reqRepo,
		orderRepo:  orderRepo,
		ledgerRepo: ledgerRepo,
		pdfGen:     pdfGen,
	}
}

// GetRequestLineCoverage deriva la cobertura de cada línea de la solicitud
// contra todas las líneas de orden que la referencian.
func (uc *UseCase) GetRequestLineCoverage(ctx context.Context, requestID string) (domainpurch.RequestCoverage, error) {
	req, err := uc.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return domainpurch.RequestCoverage{}, err
	}
	if req == nil {
		return domainpurch.RequestCoverage{}, domain.ErrNotFound
	}
	orderLines, err := uc.orderRepo.ListLinesByRequest(ctx, requestID)
	if err != nil {
		return domainpurch.RequestCoverage{}, err
	}
	cov, err := domainpurch.CoverRequest(req, orderLines)
	if err != nil {
		// Violación de invariante: se registra y se propaga, nunca se corrige
		// en silencio.
		log.Error().Err(err).Str("request_id", requestID).Msg("cobertura inconsistente")
		return domainpurch.RequestCoverage{}, err
	}
	return cov, nil
}

// GetOrderLineReceipt deriva lo recibido de cada línea de la orden desde los
// movimientos de recepción del libro.
func (uc *UseCase) GetOrderLineReceipt(ctx context.Context, orderID string) (domainpurch.OrderReceipt, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return domainpurch.OrderReceipt{}, err
	}
	if order == nil {
		return domainpurch.OrderReceipt{}, domain.ErrNotFound
	}
	receipts, err := uc.ledgerRepo.ListByRef(ctx, entity.PurchaseOrderRef(orderID))
	if err != nil {
		return domainpurch.OrderReceipt{}, err
	}
	return domainpurch.ReceiptForOrder(order, receipts), nil
}

// ApproveRequest pasa la solicitud de OPEN a APPROVED.
func (uc *UseCase) ApproveRequest(ctx context.Context, requestID string) error {
	return uc.transitionRequest(ctx, requestID, entity.RequestApproved)
}

// RejectRequest pasa la solicitud de OPEN a REJECTED.
func (uc *UseCase) RejectRequest(ctx context.Context, requestID string) error {
	return uc.transitionRequest(ctx, requestID, entity.RequestRejected)
}

func (uc *UseCase) transitionRequest(ctx context.Context, requestID, newStatus string) error {
	req, err := uc.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if !entity.CanTransitionRequest(req.Status, newStatus) {
		return domain.ErrInvalidTransition
	}
	return uc.reqRepo.UpdateStatus(ctx, requestID, newStatus)
}

// IssueOrder pasa la orden de DRAFT a ISSUED.
func (uc *UseCase) IssueOrder(ctx context.Context, orderID string) error {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if !entity.CanTransitionOrder(order.Status, entity.OrderIssued) {
		return domain.ErrInvalidTransition
	}
	return uc.orderRepo.UpdateStatus(ctx, orderID, entity.OrderIssued)
}

// OrderPDF genera el documento PDF de la orden con su estado de recepción.
func (uc *UseCase) OrderPDF(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	receipts, err := uc.ledgerRepo.ListByRef(ctx, entity.PurchaseOrderRef(orderID))
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateOrderPDF(ctx, order, domainpurch.ReceiptForOrder(order, receipts))
}
