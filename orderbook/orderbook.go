// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package orderbook

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/heap"
	"github.com/lpvault/lpvault/storage"
	"github.com/lpvault/lpvault/utils"
	"github.com/lpvault/lpvault/vaultmath"
)

// Order sides.
const (
	Bid byte = iota // buy base, escrow quote
	Ask             // sell base, escrow base
)

const initialBookSize = 128

// PriceScale is the fixed-point denominator for prices: a price of
// PriceScale means one raw quote unit per raw base unit.
var PriceScale = uint64(math.Pow10(consts.Decimals))

// Order is a resting limit order on one side of the book.
type Order struct {
	ID          ids.ID        `json:"id"`
	Side        byte          `json:"side"`
	Price       uint64        `json:"price"`
	Remaining   uint64        `json:"remaining"`
	Beneficiary codec.Address `json:"beneficiary"`
}

// OrderIntent describes an order to create or update. OrderID is ignored on
// create (the book assigns one) and identifies the resting order on update.
type OrderIntent struct {
	OrderID     ids.ID        `json:"orderID"`
	Side        byte          `json:"side"`
	Price       uint64        `json:"price"`
	Size        uint64        `json:"size"`
	Beneficiary codec.Address `json:"beneficiary"`
}

// CancelIntent identifies an order to cancel.
type CancelIntent struct {
	OrderID ids.ID `json:"orderID"`
}

// OrderResult reports the outcome of one create/update intent. A batch is
// never aborted; each intent succeeds or fails on its own.
type OrderResult struct {
	OrderID ids.ID `json:"orderID"`
	Error   string `json:"error,omitempty"`
}

// CancelResult reports the outcome of one cancel, including the escrow paid
// back to the beneficiary.
type CancelResult struct {
	OrderID       ids.ID `json:"orderID"`
	RefundedBase  uint64 `json:"refundedBase"`
	RefundedQuote uint64 `json:"refundedQuote"`
	Error         string `json:"error,omitempty"`
}

// EscrowAddress is the per-order account holding the locked funds of
// [orderID]. Nothing owns its key; the book alone moves money in and out.
func EscrowAddress(orderID ids.ID) codec.Address {
	return codec.CreateAddress(consts.EscrowID, orderID)
}

// Book is a single-market limit orderbook. Funds backing each resting order
// are escrowed at a per-order address when the order is accepted, refunded on
// cancel, and settled to the counterparties on fill. The book persists every
// resting order so it can be rebuilt after a restart.
type Book struct {
	log       logging.Logger
	tracer    trace.Tracer
	custodian Custodian
	db        OrderStore

	baseAsset  ids.ID
	quoteAsset ids.ID

	mu   sync.RWMutex
	bids *heap.Heap[*Order, uint64] // max-heap, best bid first
	asks *heap.Heap[*Order, uint64] // min-heap, best ask first
	seq  uint64
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	custodian Custodian,
	db OrderStore,
	baseAsset ids.ID,
	quoteAsset ids.ID,
) *Book {
	return &Book{
		log:       log,
		tracer:    tracer,
		custodian: custodian,
		db:        db,

		baseAsset:  baseAsset,
		quoteAsset: quoteAsset,

		bids: heap.New[*Order, uint64](initialBookSize, false),
		asks: heap.New[*Order, uint64](initialBookSize, true),
	}
}

// Restore rebuilds the in-memory book from persisted orders. Escrow balances
// already live in the custodian, so loading the records is all that is
// needed.
func (b *Book) Restore(ctx context.Context) error {
	ctx, span := b.tracer.Start(ctx, "Book.Restore")
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := storage.GetOpenOrders(ctx, b.db)
	if err != nil {
		return err
	}
	for _, r := range records {
		order := &Order{
			ID:          r.ID,
			Side:        r.Side,
			Price:       r.Limit,
			Remaining:   r.Remaining,
			Beneficiary: r.Owner,
		}
		b.sideHeap(order.Side).Push(&heap.Entry[*Order, uint64]{
			ID:    order.ID,
			Val:   order.Price,
			Item:  order,
			Index: b.sideHeap(order.Side).Len(),
		})
	}
	b.log.Info("orderbook restored", zap.Int("orders", len(records)))
	return nil
}

// Create accepts a batch of new orders. Each intent is validated, its escrow
// pulled from the beneficiary, and the order persisted; failures are reported
// per intent and never abort the batch.
func (b *Book) Create(ctx context.Context, intents []OrderIntent) []OrderResult {
	ctx, span := b.tracer.Start(ctx, "Book.Create")
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	results := make([]OrderResult, len(intents))
	for i, intent := range intents {
		results[i] = b.create(ctx, intent)
	}
	return results
}

func (b *Book) create(ctx context.Context, intent OrderIntent) OrderResult {
	if err := validateIntent(intent); err != nil {
		return OrderResult{Error: err.Error()}
	}
	escrowAsset, escrowAmount, err := b.escrowFor(intent.Side, intent.Price, intent.Size)
	if err != nil {
		return OrderResult{Error: err.Error()}
	}

	id := b.nextID(intent)
	if b.bids.Has(id) || b.asks.Has(id) {
		return OrderResult{Error: ErrDuplicateOrder.Error()}
	}
	if err := b.custodian.Transfer(ctx, escrowAsset, intent.Beneficiary, EscrowAddress(id), escrowAmount); err != nil {
		return OrderResult{Error: err.Error()}
	}
	if err := storage.SetOrder(ctx, b.db, id, intent.Side, intent.Price, intent.Size, intent.Beneficiary); err != nil {
		// Give the escrow back rather than stranding it.
		_ = b.custodian.Transfer(ctx, escrowAsset, EscrowAddress(id), intent.Beneficiary, escrowAmount)
		return OrderResult{Error: err.Error()}
	}

	order := &Order{
		ID:          id,
		Side:        intent.Side,
		Price:       intent.Price,
		Remaining:   intent.Size,
		Beneficiary: intent.Beneficiary,
	}
	h := b.sideHeap(intent.Side)
	h.Push(&heap.Entry[*Order, uint64]{
		ID:    id,
		Val:   order.Price,
		Item:  order,
		Index: h.Len(),
	})
	b.log.Debug("order created",
		zap.Stringer("order", id),
		zap.Uint8("side", order.Side),
		zap.Uint64("price", order.Price),
		zap.Uint64("size", order.Remaining),
	)
	return OrderResult{OrderID: id}
}

// Update re-prices and re-sizes resting orders, adjusting escrow by the
// difference. The order side cannot change.
func (b *Book) Update(ctx context.Context, intents []OrderIntent) []OrderResult {
	ctx, span := b.tracer.Start(ctx, "Book.Update")
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	results := make([]OrderResult, len(intents))
	for i, intent := range intents {
		results[i] = b.update(ctx, intent)
	}
	return results
}

func (b *Book) update(ctx context.Context, intent OrderIntent) OrderResult {
	if err := validateIntent(intent); err != nil {
		return OrderResult{OrderID: intent.OrderID, Error: err.Error()}
	}
	entry, ok := b.lookup(intent.OrderID)
	if !ok {
		return OrderResult{OrderID: intent.OrderID, Error: ErrOrderNotFound.Error()}
	}
	order := entry.Item
	if order.Side != intent.Side {
		return OrderResult{OrderID: intent.OrderID, Error: ErrSideMismatch.Error()}
	}

	escrowAsset, newEscrow, err := b.escrowFor(intent.Side, intent.Price, intent.Size)
	if err != nil {
		return OrderResult{OrderID: intent.OrderID, Error: err.Error()}
	}
	escrowAddr := EscrowAddress(order.ID)
	oldEscrow, err := b.custodian.Balance(ctx, escrowAddr, escrowAsset)
	if err != nil {
		return OrderResult{OrderID: intent.OrderID, Error: err.Error()}
	}
	switch {
	case newEscrow > oldEscrow:
		if err := b.custodian.Transfer(ctx, escrowAsset, order.Beneficiary, escrowAddr, newEscrow-oldEscrow); err != nil {
			return OrderResult{OrderID: intent.OrderID, Error: err.Error()}
		}
	case newEscrow < oldEscrow:
		if err := b.custodian.Transfer(ctx, escrowAsset, escrowAddr, order.Beneficiary, oldEscrow-newEscrow); err != nil {
			return OrderResult{OrderID: intent.OrderID, Error: err.Error()}
		}
	}
	if err := storage.SetOrder(ctx, b.db, order.ID, order.Side, intent.Price, intent.Size, order.Beneficiary); err != nil {
		return OrderResult{OrderID: intent.OrderID, Error: err.Error()}
	}

	// Re-position in the heap under the new price.
	h := b.sideHeap(order.Side)
	h.Remove(entry.Index)
	order.Price = intent.Price
	order.Remaining = intent.Size
	h.Push(&heap.Entry[*Order, uint64]{
		ID:    order.ID,
		Val:   order.Price,
		Item:  order,
		Index: h.Len(),
	})
	b.log.Debug("order updated",
		zap.Stringer("order", order.ID),
		zap.Uint64("price", order.Price),
		zap.Uint64("size", order.Remaining),
	)
	return OrderResult{OrderID: order.ID}
}

// Cancel removes resting orders and pays their remaining escrow back to the
// beneficiary.
func (b *Book) Cancel(ctx context.Context, cancels []CancelIntent) []CancelResult {
	ctx, span := b.tracer.Start(ctx, "Book.Cancel")
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	results := make([]CancelResult, len(cancels))
	for i, cancel := range cancels {
		results[i] = b.cancel(ctx, cancel)
	}
	return results
}

func (b *Book) cancel(ctx context.Context, cancel CancelIntent) CancelResult {
	entry, ok := b.lookup(cancel.OrderID)
	if !ok {
		return CancelResult{OrderID: cancel.OrderID, Error: ErrOrderNotFound.Error()}
	}
	order := entry.Item

	escrowAsset := b.quoteAsset
	if order.Side == Ask {
		escrowAsset = b.baseAsset
	}
	escrowAddr := EscrowAddress(order.ID)

	// Sweep whatever is left at the escrow address. Fills round in the
	// order's favor, so this can exceed the price*remaining product by dust
	// but never falls short of it.
	refund, err := b.custodian.Balance(ctx, escrowAddr, escrowAsset)
	if err != nil {
		return CancelResult{OrderID: cancel.OrderID, Error: err.Error()}
	}
	if refund > 0 {
		if err := b.custodian.Transfer(ctx, escrowAsset, escrowAddr, order.Beneficiary, refund); err != nil {
			return CancelResult{OrderID: cancel.OrderID, Error: err.Error()}
		}
	}
	if err := storage.DeleteOrder(ctx, b.db, order.ID); err != nil {
		return CancelResult{OrderID: cancel.OrderID, Error: err.Error()}
	}
	b.sideHeap(order.Side).Remove(entry.Index)

	result := CancelResult{OrderID: order.ID}
	if order.Side == Ask {
		result.RefundedBase = refund
	} else {
		result.RefundedQuote = refund
	}
	b.log.Debug("order cancelled",
		zap.Stringer("order", order.ID),
		zap.Uint64("refund", refund),
	)
	return result
}

// Fill crosses [size] base units of a taker order against the best resting
// orders on the opposite side, settling ledger balances as it goes. It
// returns the base filled and the quote moved; a partial (or empty) fill is
// not an error.
func (b *Book) Fill(ctx context.Context, taker codec.Address, side byte, size uint64) (uint64, uint64, error) {
	ctx, span := b.tracer.Start(ctx, "Book.Fill")
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	if side != Bid && side != Ask {
		return 0, 0, ErrInvalidSide
	}

	resting := b.asks
	if side == Ask {
		resting = b.bids
	}

	var (
		filledBase uint64
		movedQuote uint64
	)
	for size > 0 {
		best := resting.First()
		if best == nil {
			break
		}
		order := best.Item
		fill := size
		if order.Remaining < fill {
			fill = order.Remaining
		}
		quote, err := vaultmath.MulDiv(order.Price, fill, PriceScale)
		if err != nil {
			return filledBase, movedQuote, err
		}
		if quote == 0 {
			// Too small to price; stop rather than move base for free.
			break
		}

		escrowAddr := EscrowAddress(order.ID)
		if side == Ask {
			// Taker sells base to the resting bid: base to the
			// beneficiary, escrowed quote to the taker.
			if err := b.custodian.Transfer(ctx, b.baseAsset, taker, order.Beneficiary, fill); err != nil {
				return filledBase, movedQuote, err
			}
			if err := b.custodian.Transfer(ctx, b.quoteAsset, escrowAddr, taker, quote); err != nil {
				_ = b.custodian.Transfer(ctx, b.baseAsset, order.Beneficiary, taker, fill)
				return filledBase, movedQuote, err
			}
		} else {
			// Taker buys base from the resting ask: quote to the
			// beneficiary, escrowed base to the taker.
			if err := b.custodian.Transfer(ctx, b.quoteAsset, taker, order.Beneficiary, quote); err != nil {
				return filledBase, movedQuote, err
			}
			if err := b.custodian.Transfer(ctx, b.baseAsset, escrowAddr, taker, fill); err != nil {
				_ = b.custodian.Transfer(ctx, b.quoteAsset, order.Beneficiary, taker, quote)
				return filledBase, movedQuote, err
			}
		}

		order.Remaining -= fill
		size -= fill
		filledBase += fill
		movedQuote += quote

		if order.Remaining == 0 {
			if err := b.retire(ctx, resting, best); err != nil {
				return filledBase, movedQuote, err
			}
		} else if err := storage.SetOrder(ctx, b.db, order.ID, order.Side, order.Price, order.Remaining, order.Beneficiary); err != nil {
			return filledBase, movedQuote, err
		}
	}
	if filledBase > 0 {
		b.log.Debug("filled",
			zap.String("taker", taker.String()),
			zap.Uint8("side", side),
			zap.Uint64("base", filledBase),
			zap.Uint64("quote", movedQuote),
		)
	}
	return filledBase, movedQuote, nil
}

// retire removes a fully filled order, sweeping any escrow dust left by
// rounding back to the beneficiary.
func (b *Book) retire(ctx context.Context, h *heap.Heap[*Order, uint64], entry *heap.Entry[*Order, uint64]) error {
	order := entry.Item
	escrowAsset := b.quoteAsset
	if order.Side == Ask {
		escrowAsset = b.baseAsset
	}
	escrowAddr := EscrowAddress(order.ID)
	dust, err := b.custodian.Balance(ctx, escrowAddr, escrowAsset)
	if err != nil {
		return err
	}
	if dust > 0 {
		if err := b.custodian.Transfer(ctx, escrowAsset, escrowAddr, order.Beneficiary, dust); err != nil {
			return err
		}
	}
	if err := storage.DeleteOrder(ctx, b.db, order.ID); err != nil {
		return err
	}
	h.Remove(entry.Index)
	return nil
}

// Orders returns up to [limit] resting orders on [side], best price first.
// The returned orders are copies.
func (b *Book) Orders(ctx context.Context, side byte, limit int) []Order {
	_, span := b.tracer.Start(ctx, "Book.Orders")
	defer span.End()

	b.mu.RLock()
	defer b.mu.RUnlock()

	h := b.sideHeap(side)
	if h == nil {
		return []Order{}
	}
	orders := make([]Order, 0, h.Len())
	for _, entry := range h.Items() {
		orders = append(orders, *entry.Item)
	}
	slices.SortFunc(orders, func(a, c Order) int {
		switch {
		case a.Price == c.Price:
			return 0
		case side == Bid && a.Price > c.Price, side == Ask && a.Price < c.Price:
			return -1
		default:
			return 1
		}
	})
	if limit < len(orders) {
		orders = orders[:limit]
	}
	return orders
}

// Len returns the number of resting orders on both sides.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.bids.Len() + b.asks.Len()
}

func (b *Book) sideHeap(side byte) *heap.Heap[*Order, uint64] {
	switch side {
	case Bid:
		return b.bids
	case Ask:
		return b.asks
	default:
		return nil
	}
}

func (b *Book) lookup(orderID ids.ID) (*heap.Entry[*Order, uint64], bool) {
	if entry, ok := b.bids.Get(orderID); ok {
		return entry, true
	}
	return b.asks.Get(orderID)
}

// escrowFor returns the asset and amount a resting order must lock.
func (b *Book) escrowFor(side byte, price uint64, size uint64) (ids.ID, uint64, error) {
	if side == Ask {
		return b.baseAsset, size, nil
	}
	quote, err := vaultmath.MulDiv(price, size, PriceScale)
	if err != nil {
		return ids.Empty, 0, err
	}
	if quote == 0 {
		return ids.Empty, 0, ErrDustOrder
	}
	return b.quoteAsset, quote, nil
}

func validateIntent(intent OrderIntent) error {
	if intent.Side != Bid && intent.Side != Ask {
		return ErrInvalidSide
	}
	if intent.Price == 0 {
		return ErrInvalidPrice
	}
	if intent.Size == 0 {
		return ErrInvalidSize
	}
	return nil
}

// nextID derives a fresh order id from the intent and a sequence number.
func (b *Book) nextID(intent OrderIntent) ids.ID {
	b.seq++
	v := make([]byte, codec.AddressLen+consts.ByteLen+consts.Uint64Len*4)
	copy(v, intent.Beneficiary[:])
	v[codec.AddressLen] = intent.Side
	binary.BigEndian.PutUint64(v[codec.AddressLen+consts.ByteLen:], intent.Price)
	binary.BigEndian.PutUint64(v[codec.AddressLen+consts.ByteLen+consts.Uint64Len:], intent.Size)
	binary.BigEndian.PutUint64(v[codec.AddressLen+consts.ByteLen+consts.Uint64Len*2:], b.seq)
	binary.BigEndian.PutUint64(v[codec.AddressLen+consts.ByteLen+consts.Uint64Len*3:], uint64(time.Now().UnixNano()))
	return utils.ToID(v)
}
