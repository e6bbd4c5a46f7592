// Package basket implements the purchase basket: an insertion-ordered set
// of line items keyed by item id with derived totals.
package basket

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/catalog"
)

// LineItem is one basket entry. Quantity is always at least one; a line
// reduced to zero is removed.
type LineItem struct {
	Item     catalog.Item `json:"product"`
	Quantity int          `json:"quantity"`
}

// Subtotal returns quantity × unit price.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot is an immutable copy of the basket taken at checkout.
type Snapshot struct {
	Items      []LineItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// IsEmpty reports whether the snapshot holds no items.
func (s Snapshot) IsEmpty() bool {
	return s.TotalItems == 0
}

// Basket is safe for concurrent use.
type Basket struct {
	mu    sync.Mutex
	order []string
	lines map[string]LineItem
}

func New() *Basket {
	return &Basket{lines: map[string]LineItem{}}
}

// Add increments the quantity of item, inserting it with quantity one when
// absent.
func (b *Basket) Add(item catalog.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if line, ok := b.lines[item.ID]; ok {
		line.Quantity++
		b.lines[item.ID] = line
		return
	}
	b.order = append(b.order, item.ID)
	b.lines[item.ID] = LineItem{Item: item, Quantity: 1}
}

// SetQuantity sets the exact quantity of an existing line. A quantity of
// zero or less removes the line. Unknown ids are ignored.
func (b *Basket) SetQuantity(itemID string, quantity int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	line, ok := b.lines[itemID]
	if !ok {
		return
	}
	if quantity <= 0 {
		b.remove(itemID)
		return
	}
	line.Quantity = quantity
	b.lines[itemID] = line
}

// Clear removes every line.
func (b *Basket) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.order = nil
	b.lines = map[string]LineItem{}
}

// RemoveOrdered takes the quantities of an ordered snapshot out of the
// basket in one step. Lines added or increased after the snapshot keep the
// difference; a basket unchanged since the snapshot ends up empty.
func (b *Basket) RemoveOrdered(snapshot Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ordered := range snapshot.Items {
		line, ok := b.lines[ordered.Item.ID]
		if !ok {
			continue
		}
		line.Quantity -= ordered.Quantity
		if line.Quantity <= 0 {
			b.remove(ordered.Item.ID)
			continue
		}
		b.lines[ordered.Item.ID] = line
	}
}

// Items returns the lines in insertion order.
func (b *Basket) Items() []LineItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.itemsLocked()
}

func (b *Basket) TotalItems() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return totalItems(b.lines)
}

func (b *Basket) TotalPrice() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return totalPrice(b.lines)
}

func (b *Basket) IsEmpty() bool {
	return b.TotalItems() == 0
}

// Snapshot captures the current contents and totals in one consistent read.
func (b *Basket) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Items:      b.itemsLocked(),
		TotalItems: totalItems(b.lines),
		TotalPrice: totalPrice(b.lines),
	}
}

func (b *Basket) itemsLocked() []LineItem {
	out := make([]LineItem, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.lines[id])
	}
	return out
}

func (b *Basket) remove(itemID string) {
	delete(b.lines, itemID)
	for i, id := range b.order {
		if id == itemID {
			b.order = append(b.order[:i:i], b.order[i+1:]...)
			return
		}
	}
}

func totalItems(lines map[string]LineItem) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

func totalPrice(lines map[string]LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
