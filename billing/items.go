package billing

import (
	"practice-billing-backend/models"
	"practice-billing-backend/utils"
)

// ReviseLineItem applies an edit to a line item. prev is nil for a new item.
//
// Whenever quantity or rate changed, amount is recomputed as their product.
// An edit that touches only amount is kept as a manual override; a warning is
// logged when the override disagrees with quantity*rate, since nothing
// reconciles it later.
func (e *Engine) ReviseLineItem(prev *models.LineItem, next models.LineItem) (models.LineItem, error) {
	if next.Quantity <= 0 {
		return models.LineItem{}, invalidf(ErrQuantityNotPositive, "got %d", next.Quantity)
	}
	if next.Rate < 0 {
		return models.LineItem{}, invalidf(ErrRateNegative, "got %.2f", next.Rate)
	}

	computed := utils.Round2(float64(next.Quantity) * next.Rate)
	switch {
	case prev == nil:
		if next.ID == "" {
			next.ID = e.newID()
		}
		if next.Amount == 0 {
			next.Amount = computed
		}
	case next.Quantity != prev.Quantity || next.Rate != prev.Rate:
		next.Amount = computed
	}
	next.Amount = utils.Round2(next.Amount)

	if next.Amount != computed {
		e.log.Warn().
			Str("line_item_id", next.ID).
			Float64("amount", next.Amount).
			Float64("computed", computed).
			Msg("line item amount manually overridden")
	}
	return next, nil
}
