package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/domain"
)

var (
	// ErrEmptyCart is returned when checking out a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCheckoutInProgress is returned while a previous checkout is pending.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// Checkouter submits a checkout to the storefront. An error means no usable
// answer was received; a declined checkout is a result with Success false.
type Checkouter interface {
	Checkout(ctx context.Context, sub domain.CheckoutSubmission) (domain.CheckoutResult, error)
}

// Session holds one shopper's current cart State. It is safe for concurrent
// use.
type Session struct {
	mu         sync.Mutex
	state      State
	checkouter Checkouter
	logger     *slog.Logger
	wg         sync.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithState starts the session from s instead of an empty cart.
func WithState(s State) Option {
	return func(sess *Session) {
		sess.state = s
	}
}

// NewSession creates a session that submits checkouts through c.
func NewSession(c Checkouter, logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		checkouter: c,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current cart state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) apply(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// AddToCart adds one unit of p and returns the new state.
func (s *Session) AddToCart(p domain.Product) State {
	return s.apply(func(st State) State { return st.AddToCart(p) })
}

// UpdateQuantity changes a line's quantity by delta and returns the new state.
func (s *Session) UpdateQuantity(productID, delta int) State {
	return s.apply(func(st State) State { return st.UpdateQuantity(productID, delta) })
}

// SetQuantity sets a line's quantity to q and returns the new state.
func (s *Session) SetQuantity(productID, q int) State {
	return s.apply(func(st State) State { return st.SetQuantity(productID, q) })
}

// OpenCart shows the drawer.
func (s *Session) OpenCart() State {
	return s.apply(State.OpenCart)
}

// CloseCart hides the drawer.
func (s *Session) CloseCart() State {
	return s.apply(State.CloseCart)
}

// Checkout submits the current cart with contact in the background. The
// returned channel delivers exactly one result and is then closed. The cart
// is cleared only when the storefront accepts the order; any transport
// failure is reported as a generic failed result.
//
// Once submitted the request is not cancelled when ctx is.
func (s *Session) Checkout(ctx context.Context, contact domain.Contact) (<-chan domain.CheckoutResult, error) {
	s.mu.Lock()
	if s.state.checkingOut {
		s.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	if s.state.IsEmpty() {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}
	s.state = s.state.beginCheckout()
	sub := domain.CheckoutSubmission{
		Contact: contact,
		Lines:   s.state.Lines(),
		Total:   s.state.Total(),
	}
	s.wg.Add(1)
	s.mu.Unlock()

	out := make(chan domain.CheckoutResult, 1)
	go func() {
		defer s.wg.Done()
		defer close(out)

		res, err := s.checkouter.Checkout(context.WithoutCancel(ctx), sub)
		if err != nil {
			s.logger.WarnContext(ctx, "checkout request failed",
				slog.Int("lines", len(sub.Lines)),
				slog.String("error", err.Error()),
			)
			res = domain.FailedResult(domain.MessageCheckoutFailed)
		}

		s.apply(func(st State) State { return st.finishCheckout(res) })
		out <- res
	}()

	return out, nil
}

// Wait blocks until every checkout started by the session has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}
