// Package shop is a line-oriented terminal storefront driving a cart.Session
// against the storefront HTTP API.
package shop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/cart"
	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/domain"
)

// ProductSource lists the products for sale.
type ProductSource interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// Shop reads commands from a terminal and renders the cart.
type Shop struct {
	source   ProductSource
	session  *cart.Session
	logger   *slog.Logger
	money    usd
	products []domain.Product

	// pending tracks checkout results not yet printed.
	pending sync.WaitGroup
}

// lockedWriter serializes writes from the command loop and checkout results.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// New creates a shop that loads products from source and keeps the cart in
// session.
func New(source ProductSource, session *cart.Session, logger *slog.Logger) *Shop {
	return &Shop{
		source:  source,
		session: session,
		logger:  logger,
		money:   newUSD(),
	}
}

const helpText = `Commands:
  list                          show products
  add <id>                      add one unit to the cart
  inc <id> | dec <id>           change a line's quantity by one
  qty <id> <n>                  set a line's quantity (0 removes it)
  cart                          show the cart
  open | close                  show or hide the cart after each command
  checkout <name>|<email>|<address>
                                place the order
  help                          show this help
  quit                          leave the shop
`

var errQuit = errors.New("quit")

// Run loads the catalog, then executes commands from in until it is
// exhausted, a quit command is read or ctx is cancelled. Commands keep
// running while a checkout is in flight; its result is printed when it
// arrives, and always before Run returns.
func (s *Shop) Run(ctx context.Context, in io.Reader, w io.Writer) error {
	defer s.pending.Wait()
	defer s.session.Wait()

	out := &lockedWriter{w: w}

	products, err := s.source.Products(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	s.products = products

	fmt.Fprintf(out, "Welcome! %d products available. Type \"help\" for commands.\n", len(products))
	s.printProducts(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "[cart: %d] > ", s.session.State().ItemCount())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := s.exec(ctx, strings.TrimSpace(scanner.Text()), out); err != nil {
			if errors.Is(err, errQuit) {
				fmt.Fprintln(out, "Bye!")
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}

		if st := s.session.State(); st.IsOpen() {
			s.printCart(out, st)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return ctx.Err()
}

func (s *Shop) exec(ctx context.Context, line string, out io.Writer) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "":
		return nil
	case "help", "?":
		fmt.Fprint(out, helpText)
	case "list", "ls":
		s.printProducts(out)
	case "add":
		p, err := s.product(rest)
		if err != nil {
			return err
		}
		st := s.session.AddToCart(p)
		fmt.Fprintf(out, "Added %s (%d in cart).\n", p.Name, st.Quantity(p.ID))
	case "inc", "dec":
		id, err := s.lineID(rest)
		if err != nil {
			return err
		}
		delta := 1
		if cmd == "dec" {
			delta = -1
		}
		s.session.UpdateQuantity(id, delta)
	case "qty":
		ref, n, ok := strings.Cut(rest, " ")
		if !ok {
			return errors.New("usage: qty <id> <n>")
		}
		id, err := s.lineID(ref)
		if err != nil {
			return err
		}
		q, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || q < 0 {
			return fmt.Errorf("invalid quantity %q", n)
		}
		s.session.SetQuantity(id, q)
	case "cart":
		if !s.session.State().IsOpen() {
			s.printCart(out, s.session.State())
		}
	case "open":
		s.session.OpenCart()
	case "close":
		s.session.CloseCart()
	case "checkout":
		return s.checkout(ctx, rest, out)
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type \"help\"", cmd)
	}
	return nil
}

func (s *Shop) checkout(ctx context.Context, form string, out io.Writer) error {
	parts := strings.Split(form, "|")
	if len(parts) != 3 {
		return errors.New("usage: checkout <name>|<email>|<address>")
	}
	contact := domain.Contact{
		Name:    strings.TrimSpace(parts[0]),
		Email:   strings.TrimSpace(parts[1]),
		Address: strings.TrimSpace(parts[2]),
	}

	results, err := s.session.Checkout(ctx, contact)
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		fmt.Fprintln(out, "Your cart is empty.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintln(out, "Placing order...")
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		res := <-results
		if res.Success {
			s.logger.InfoContext(ctx, "order placed", slog.String("order_id", res.OrderID))
			fmt.Fprintf(out, "%s Order ID: %s\n", res.Message, res.OrderID)
			return
		}
		fmt.Fprintln(out, res.Message)
	}()
	return nil
}

// product resolves ref against the loaded catalog by ID or slug.
func (s *Shop) product(ref string) (domain.Product, error) {
	if ref == "" {
		return domain.Product{}, errors.New("missing product id")
	}
	id, err := strconv.Atoi(ref)
	for _, p := range s.products {
		if (err == nil && p.ID == id) || p.Slug == ref {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("no product %q", ref)
}

// lineID resolves ref to a product ID. Products that are not in the cart
// are accepted; updating them is a no-op.
func (s *Shop) lineID(ref string) (int, error) {
	if p, err := s.product(ref); err == nil {
		return p.ID, nil
	}
	id, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("no product %q", ref)
	}
	return id, nil
}

func (s *Shop) printProducts(out io.Writer) {
	for _, p := range s.products {
		fmt.Fprintf(out, "  %2d  %-24s %10s  %s\n", p.ID, p.Name, s.money.Format(p.Price), p.Description)
	}
}

func (s *Shop) printCart(out io.Writer, st cart.State) {
	if st.IsEmpty() {
		fmt.Fprintln(out, "Cart is empty.")
		return
	}
	fmt.Fprintln(out, "Cart:")
	for _, l := range st.Lines() {
		fmt.Fprintf(out, "  %2d  %-24s x%-3d %10s\n", l.Product.ID, l.Product.Name, l.Quantity, s.money.Format(l.Subtotal()))
	}
	fmt.Fprintf(out, "  Total: %s\n", s.money.Format(st.Total()))
}
