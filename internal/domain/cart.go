package domain

// CartLine guarda una copia del producto al momento de agregarlo, más la
// cantidad. El snapshot evita que un recambio de catálogo altere un
// carrito ya armado.
type CartLine struct {
	Product Product `json:"product"`
	Qty     int     `json:"qty"`
}

// Cart mapea id de producto a línea, conservando el orden de inserción
// para que la serialización sea estable entre sesiones.
type Cart struct {
	items map[string]*CartLine
	order []string
}

func NewCart() *Cart {
	return &Cart{items: map[string]*CartLine{}}
}

// Add suma qty a la línea existente (o crea una nueva) y refresca el
// snapshot del producto. Cantidades menores a 1 cuentan como 1. Si la
// suma supera el stock publicado devuelve ErrInsufficientStock y el
// carrito queda como estaba.
func (c *Cart) Add(p Product, qty int) error {
	if qty < 1 {
		qty = 1
	}
	current := 0
	if line, ok := c.items[p.ID]; ok {
		current = line.Qty
	}
	if current+qty > p.Stock {
		return ErrInsufficientStock
	}
	if _, ok := c.items[p.ID]; !ok {
		c.order = append(c.order, p.ID)
	}
	c.items[p.ID] = &CartLine{Product: p, Qty: current + qty}
	return nil
}

// Remove es idempotente: quitar algo que no está no es un error.
func (c *Cart) Remove(id string) {
	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// SetQuantity fija la cantidad de una línea existente, acotada a
// [1, stock]. Pedir 0 o menos deja 1: esta operación nunca elimina la
// línea (para eso está Remove, o Decrement en el controlador).
func (c *Cart) SetQuantity(id string, qty int) {
	line, ok := c.items[id]
	if !ok {
		return
	}
	if qty < 1 {
		qty = 1
	}
	if qty > line.Product.Stock {
		qty = line.Product.Stock
	}
	line.Qty = qty
}

func (c *Cart) Clear() {
	c.items = map[string]*CartLine{}
	c.order = nil
}

func (c *Cart) Get(id string) (CartLine, bool) {
	line, ok := c.items[id]
	if !ok {
		return CartLine{}, false
	}
	return *line, true
}

// Qty devuelve 0 para productos que no están en el carrito.
func (c *Cart) Qty(id string) int {
	if line, ok := c.items[id]; ok {
		return line.Qty
	}
	return 0
}

func (c *Cart) Len() int { return len(c.items) }

// Lines devuelve una copia en orden de inserción; es la forma que se
// persiste y la que consume el cálculo de totales.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		if line, ok := c.items[id]; ok {
			out = append(out, *line)
		}
	}
	return out
}

// Replace reconstruye el carrito desde líneas persistidas, descartando
// entradas sin id o con cantidad inválida en lugar de fallar.
func (c *Cart) Replace(lines []CartLine) {
	c.Clear()
	for _, l := range lines {
		if l.Product.ID == "" || l.Qty < 1 {
			continue
		}
		if _, ok := c.items[l.Product.ID]; !ok {
			c.order = append(c.order, l.Product.ID)
		}
		line := l
		c.items[l.Product.ID] = &line
	}
}
