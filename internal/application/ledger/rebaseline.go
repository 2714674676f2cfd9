package ledger

import (
	"context"

	"github.com/tallersur/taller-api/internal/domain/costing"
)

// RebaselineReferenceCosts recalcula el costo de referencia de cada SKU con
// historial de recepciones usando el promedio ponderado sobre la ventana de
// recepciones recientes (sampleSize; <= 0 usa la ventana por defecto). Los
// SKUs sin recepciones no se tocan. Operación de mantenimiento; devuelve la
// cantidad de productos actualizados.
func (uc *UseCase) RebaselineReferenceCosts(ctx context.Context, sampleSize int) (int, error) {
	if sampleSize <= 0 {
		sampleSize = costing.DefaultWACSampleSize
	}
	skus, err := uc.ledgerRepo.SKUsWithReceipts(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, sku := range skus {
		receipts, err := uc.ledgerRepo.RecentReceipts(ctx, sku, sampleSize)
		if err != nil {
			return updated, err
		}
		wac, ok := costing.WeightedAverageCost(receipts, sampleSize)
		if !ok {
			continue
		}
		if err := uc.productRepo.UpdateCostoRef(ctx, sku, wac); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
