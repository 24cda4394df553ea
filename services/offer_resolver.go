package services

import (
	"errors"
	"fmt"

	"github.com/shubhshah23/emesa-digital/models"
	"gorm.io/gorm"
)

// LatestOffer returns the current latest counter offer for an order, or nil
// when no counter offer has been appended yet. The latest offer is the
// counter_offer message with the greatest ID: IDs are allocated in append
// order, so append sequence is the tie-break, never wall clock.
//
// Acceptance decisions must call this inside the same transaction that
// commits the acceptance; Order.CurrentOfferID is the denormalized read path
// for dashboards only.
func LatestOffer(db *gorm.DB, orderID uint) (*models.Message, error) {
	var offer models.Message
	err := db.Where("order_id = ? AND kind = ?", orderID, models.KindCounterOffer).
		Preload("Sender").
		Order("id DESC").
		First(&offer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve latest offer: %w", err)
	}
	return &offer, nil
}

// OfferAcceptableBy reports whether caller may accept the given offer on the
// given order. It is a pure predicate over already-loaded state.
//
// An offer is acceptable only by the party that did not author it, and only
// while the order still has an offer outstanding.
func OfferAcceptableBy(order *models.Order, offer *models.Message, caller *models.User) error {
	if order.Status != models.StatusNegotiation {
		return fmt.Errorf("%w: order %d is %s, not open for acceptance", ErrStateConflict, order.ID, order.Status)
	}
	if offer == nil {
		return fmt.Errorf("%w: no counter offer to accept", ErrValidation)
	}
	if offer.Sender.Role == caller.Role {
		return fmt.Errorf("%w: a party may not accept its own offer", ErrInvalidAuthor)
	}
	return nil
}
