package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shubhshah23/emesa-digital/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderService is the order lifecycle and price negotiation engine. Every
// mutating operation acquires the per-order lock, runs one transaction that
// re-reads the order and re-checks preconditions, and either commits fully
// or fails with a domain error. Both dashboards poll; the engine never
// assumes a caller has seen the latest state before acting.
type OrderService struct {
	db       *gorm.DB
	registry MachineRegistry
}

// NewOrderService creates an order engine over the given database and
// machine registry.
func NewOrderService(db *gorm.DB, registry MachineRegistry) *OrderService {
	return &OrderService{db: db, registry: registry}
}

// orderLocks serializes mutating operations per order id. Different orders
// never contend with each other.
var orderLocks sync.Map

func lockForOrder(orderID uint) *sync.Mutex {
	mu, _ := orderLocks.LoadOrStore(orderID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// forUpdate adds row locking on databases that support it, so the re-check
// inside the transaction also holds when the engine runs as more than one
// process against the same Postgres.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// defaultCompletionLeadTime is applied when an approval does not carry an
// expected completion date.
const defaultCompletionLeadTime = 14 * 24 * time.Hour

// SubmitOrderInput carries the part details for a new order.
type SubmitOrderInput struct {
	ProductDescription string
	Quantity           int
	MaterialType       string
	MaterialGrade      string
	MaterialThickness  string
	SurfaceTreatment   string
	PackingStandard    string
	TargetPrice        *float64
	StepFileS3Key      *string
	DraftDesignS3Key   *string
}

// SubmitOrder creates a new order in under_review for the calling requester
// and allocates its part identifier. The order and its negotiation log are
// born together; the log starts empty.
func (s *OrderService) SubmitOrder(caller *models.User, input SubmitOrderInput) (*models.Order, error) {
	if caller.Role != models.RoleRequester {
		return nil, fmt.Errorf("%w: only requesters can submit orders", ErrInvalidAuthor)
	}
	if strings.TrimSpace(input.ProductDescription) == "" {
		return nil, fmt.Errorf("%w: product description is required", ErrValidation)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if strings.TrimSpace(input.MaterialType) == "" {
		return nil, fmt.Errorf("%w: material type is required", ErrValidation)
	}
	if input.TargetPrice != nil && *input.TargetPrice <= 0 {
		return nil, fmt.Errorf("%w: target price must be positive", ErrValidation)
	}

	order := models.Order{
		PartID:             newPartID(),
		RequesterID:        caller.ID,
		ProductDescription: input.ProductDescription,
		Quantity:           input.Quantity,
		MaterialType:       input.MaterialType,
		MaterialGrade:      input.MaterialGrade,
		MaterialThickness:  input.MaterialThickness,
		SurfaceTreatment:   input.SurfaceTreatment,
		PackingStandard:    input.PackingStandard,
		TargetPrice:        input.TargetPrice,
		StepFileS3Key:      input.StepFileS3Key,
		DraftDesignS3Key:   input.DraftDesignS3Key,
		Status:             models.StatusUnderReview,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return s.GetOrder(order.ID, caller)
}

// newPartID allocates an external part identifier for a submitted order.
func newPartID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "EMD-" + raw[:12]
}

// ListOrders returns the caller's visible orders: all orders for reviewers,
// own orders for requesters, newest first.
func (s *OrderService) ListOrders(caller *models.User) ([]models.Order, error) {
	query := s.db.
		Preload("Requester").
		Preload("Machine.Supplier").
		Preload("CurrentOffer.Sender").
		Order("created_at DESC, id DESC")
	if !caller.IsReviewer() {
		query = query.Where("requester_id = ?", caller.ID)
	}

	// An empty queue serializes as [] rather than null
	orders := make([]models.Order, 0)
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one order visible to the caller.
func (s *OrderService) GetOrder(orderID uint, caller *models.User) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Requester").
		Preload("Machine.Supplier").
		Preload("CurrentOffer.Sender").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrUnknownOrder, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %d: %w", orderID, err)
	}
	if !order.IsParticipant(caller) {
		return nil, fmt.Errorf("%w: not a participant of order %d", ErrInvalidAuthor, orderID)
	}
	return &order, nil
}

// ListMessages returns the full negotiation log for an order in append
// order, oldest first.
func (s *OrderService) ListMessages(orderID uint, caller *models.User) ([]models.Message, error) {
	if _, err := s.GetOrder(orderID, caller); err != nil {
		return nil, err
	}
	messages := make([]models.Message, 0)
	if err := s.db.Where("order_id = ?", orderID).
		Preload("Sender").
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}

// mutate runs fn against a freshly-read order inside the per-order critical
// section and one transaction. fn sees current state, never a poll-time
// snapshot; on any error nothing is persisted.
func (s *OrderService) mutate(orderID uint, caller *models.User, fn func(tx *gorm.DB, order *models.Order) error) (*models.Order, error) {
	mu := lockForOrder(orderID)
	mu.Lock()
	defer mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := forUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrUnknownOrder, orderID)
			}
			return fmt.Errorf("failed to load order %d: %w", orderID, err)
		}
		if !order.IsParticipant(caller) {
			return fmt.Errorf("%w: not a participant of order %d", ErrInvalidAuthor, orderID)
		}
		if err := fn(tx, &order); err != nil {
			return err
		}
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed to save order %d: %w", orderID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(orderID, caller)
}

// transition moves an order along the state machine or fails with
// ErrStateConflict. Every status change in the engine funnels through here.
func transition(order *models.Order, next models.OrderStatus) error {
	if !order.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move order %d from %s to %s", ErrStateConflict, order.ID, order.Status, next)
	}
	order.Status = next
	return nil
}

// appendMessage appends one immutable entry to the order's negotiation log.
func appendMessage(tx *gorm.DB, order *models.Order, sender *models.User, kind, text string, amount *float64) (*models.Message, error) {
	message := models.Message{
		OrderID:  order.ID,
		SenderID: sender.ID,
		Kind:     kind,
		Text:     text,
		Amount:   amount,
	}
	if err := tx.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	return &message, nil
}

// SendMessage appends a chat message to the order's log. Chat carries no
// side effect but is refused once the order is terminal.
func (s *OrderService) SendMessage(orderID uint, caller *models.User, text string) (*models.Order, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text is required", ErrValidation)
	}
	return s.mutate(orderID, caller, func(tx *gorm.DB, order *models.Order) error {
		if order.Status.IsTerminal() {
			return fmt.Errorf("%w: order %d is %s, log is closed", ErrStateConflict, order.ID, order.Status)
		}
		_, err := appendMessage(tx, order, caller, models.KindChat, text, nil)
		return err
	})
}

// SendCounterOffer appends a priced proposal to the log and moves the order
// into negotiation. Either party may counter, and a party may supersede its
// own outstanding offer with a new one; the newest append is always the
// latest offer.
func (s *OrderService) SendCounterOffer(orderID uint, caller *models.User, amount float64, note string) (*models.Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: counter offer amount must be positive", ErrValidation)
	}
	text := note
	if strings.TrimSpace(text) == "" {
		text = fmt.Sprintf("Counter offer: ₹%.2f", amount)
	}
	return s.mutate(orderID, caller, func(tx *gorm.DB, order *models.Order) error {
		if order.Status != models.StatusUnderReview && order.Status != models.StatusNegotiation {
			return fmt.Errorf("%w: order %d is %s, negotiation is closed", ErrStateConflict, order.ID, order.Status)
		}
		if err := transition(order, models.StatusNegotiation); err != nil {
			return err
		}
		offer, err := appendMessage(tx, order, caller, models.KindCounterOffer, text, &amount)
		if err != nil {
			return err
		}
		// Maintained in the same transaction as the append so dashboards
		// read a consistent current offer.
		order.CurrentOfferID = &offer.ID
		return nil
	})
}

// AcceptLatestOffer commits the caller to the current latest counter offer.
// The latest offer is recomputed from the log inside the critical section:
// a caller acting on a stale poll loses with ErrStateConflict or
// ErrInvalidAuthor instead of accepting an amount it never saw committed.
func (s *OrderService) AcceptLatestOffer(orderID uint, caller *models.User) (*models.Order, error) {
	return s.mutate(orderID, caller, func(tx *gorm.DB, order *models.Order) error {
		offer, err := LatestOffer(tx, order.ID)
		if err != nil {
			return err
		}
		if err := OfferAcceptableBy(order, offer, caller); err != nil {
			return err
		}
		if err := transition(order, models.StatusAwaitingPayment); err != nil {
			return err
		}
		order.AgreedPrice = offer.Amount
		notice := fmt.Sprintf("%s accepted the offer of ₹%.2f.", roleLabel(caller), *offer.Amount)
		_, err = appendMessage(tx, order, caller, models.KindSystem, notice, nil)
		return err
	})
}

// ApproveAtTargetInput carries the optional fields a reviewer may set when
// approving an order directly at the requester's target price.
type ApproveAtTargetInput struct {
	ExpectedCompletionDate *time.Time
	AdminNotes             string
}

// ApproveAtTarget lets the reviewer accept the requester's target price
// directly, skipping the counter-offer exchange. The agreed price becomes
// the target price and the order moves to awaiting_payment.
func (s *OrderService) ApproveAtTarget(orderID uint, caller *models.User, input ApproveAtTargetInput) (*models.Order, error) {
	if err := requireReviewer(caller); err != nil {
		return nil, err
	}
	return s.mutate(orderID, caller, func(tx *gorm.DB, order *models.Order) error {
		if order.TargetPrice == nil {
			return fmt.Errorf("%w: order %d has no target price to approve", ErrValidation, order.ID)
		}
		if order.Status != models.StatusUnderReview && order.Status != models.StatusNegotiation {
			return fmt.Errorf("%w: order %d is %s, approval window is closed", ErrStateConflict, order.ID, order.Status)
		}
		if err := transition(order, models.StatusAwaitingPayment); err != nil {
			return err
		}
		order.PriceEstimate = order.TargetPrice
		order.AgreedPrice = order.TargetPrice
		order.AdminNotes = input.AdminNotes
		if input.ExpectedCompletionDate != nil {
			order.ExpectedCompletionDate = input.ExpectedCompletionDate
		} else {
			due := time.Now().Add(defaultCompletionLeadTime)
			order.ExpectedCompletionDate = &due
		}
		notice := fmt.Sprintf("Reviewer approved the order at the target price of ₹%.2f.", *order.TargetPrice)
		_, err := appendMessage(tx, order, caller, models.KindSystem, notice, nil)
		return err
	})
}

// Reject moves an order to the terminal rejected state with a reason. Only
// legal while the order is still being reviewed or negotiated.
func (s *OrderService) Reject(orderID uint, caller *models.User, reason string) (*models.Order, error) {
	if err := requireReviewer(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}
	return s.mutate(orderID, caller, func(tx *gorm.DB, order *models.Order) error {
		if err := transition(order, models.StatusRejected); err != nil {
			return err
		}
		now := time.Now()
		order.RejectionReason = &reason
		order.DateRejected = &now
		return nil
	})
}

// ConfirmPayment records the payment-confirmation signal for the order's
// agreed price and moves it from awaiting_payment to accepted. The signal
// source (real or simulated processor) is trusted; only the owning
// requester relays it.
func (s *OrderService) ConfirmPayment(orderID uint, caller *models.User) (*models.Order, error) {
	if caller.Role != models.RoleRequester {
		return nil, fmt.Errorf("%w: only the requester confirms payment", ErrInvalidAuthor)
	}
	return s.mutate(orderID, caller, func(tx *gorm.DB, order *models.Order) error {
		if err := transition(order, models.StatusAccepted); err != nil {
			return err
		}
		now := time.Now()
		order.PaymentConfirmed = true
		order.DateAccepted = &now
		notice := fmt.Sprintf("Requester confirmed payment for agreed price ₹%.2f.", *order.AgreedPrice)
		_, err := appendMessage(tx, order, caller, models.KindSystem, notice, nil)
		return err
	})
}

// AssignMachine records the machine reference for an accepted order after
// checking the id resolves in the external registry. Re-assigning the same
// machine is a no-op; a different machine overwrites the reference only
// while the order is still accepted.
func (s *OrderService) AssignMachine(orderID uint, caller *models.User, machineID uint) (*models.Order, error) {
	if err := requireReviewer(caller); err != nil {
		return nil, err
	}
	return s.mutate(orderID, caller, func(tx *gorm.DB, order *models.Order) error {
		if order.MachineID != nil && *order.MachineID == machineID {
			// Idempotent: same machine, nothing to do.
			return nil
		}
		if order.Status != models.StatusAccepted {
			return fmt.Errorf("%w: order %d is %s, machine assignment requires accepted", ErrStateConflict, order.ID, order.Status)
		}
		exists, err := s.registry.MachineExists(machineID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: machine %d", ErrUnknownMachine, machineID)
		}
		order.MachineID = &machineID
		return nil
	})
}

// StartProduction moves an accepted order with an assigned machine into
// in_production.
func (s *OrderService) StartProduction(orderID uint, caller *models.User) (*models.Order, error) {
	if err := requireReviewer(caller); err != nil {
		return nil, err
	}
	return s.mutate(orderID, caller, func(tx *gorm.DB, order *models.Order) error {
		if order.Status == models.StatusAccepted && order.MachineID == nil {
			return fmt.Errorf("%w: a machine must be assigned before production can start", ErrValidation)
		}
		if err := transition(order, models.StatusInProduction); err != nil {
			return err
		}
		now := time.Now()
		order.DateProductionStarted = &now
		return nil
	})
}

// Complete marks an in-production order as completed, optionally recording
// the actual production cost.
func (s *OrderService) Complete(orderID uint, caller *models.User, actualCost *float64) (*models.Order, error) {
	if err := requireReviewer(caller); err != nil {
		return nil, err
	}
	if actualCost != nil && *actualCost <= 0 {
		return nil, fmt.Errorf("%w: actual cost must be positive", ErrValidation)
	}
	return s.mutate(orderID, caller, func(tx *gorm.DB, order *models.Order) error {
		if err := transition(order, models.StatusCompleted); err != nil {
			return err
		}
		now := time.Now()
		order.DateCompleted = &now
		if actualCost != nil {
			order.ActualCost = actualCost
		}
		return nil
	})
}

func requireReviewer(caller *models.User) error {
	if !caller.IsReviewer() {
		return fmt.Errorf("%w: reviewer role required", ErrInvalidAuthor)
	}
	return nil
}

func roleLabel(user *models.User) string {
	if user.IsReviewer() {
		return "Reviewer"
	}
	return "Requester"
}
