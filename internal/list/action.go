package list

// Action describes a single state transition. Actions are plain data so they
// can be logged and replayed; Apply is the only place they take effect.
type Action interface {
	// Name is a short identifier used in logs and error messages.
	Name() string
}

// AddItem appends a new item, or bumps the quantity of an existing item with
// the same label.
type AddItem struct {
	Label    string
	Quantity int
}

// RemoveItem deletes an item.
type RemoveItem struct {
	ID string
}

// ToggleItem flips an item's checked flag.
type ToggleItem struct {
	ID string
}

// SetQuantity sets an item's quantity.
type SetQuantity struct {
	ID       string
	Quantity int
}

// SetLabel renames an item.
type SetLabel struct {
	ID    string
	Label string
}

// SetNote sets an item's free-text note; an empty note clears it.
type SetNote struct {
	ID   string
	Note string
}

// AddCategory tags an item with a category.
type AddCategory struct {
	ID       string
	Category string
}

// RemoveCategory removes a category tag from an item.
type RemoveCategory struct {
	ID       string
	Category string
}

// ClearChecked removes every checked item.
type ClearChecked struct{}

// SetSearchInput updates the persisted search box text.
type SetSearchInput struct {
	Text string
}

// SetShowChecked flips whether checked items stay visible.
type SetShowChecked struct {
	Show bool
}

func (AddItem) Name() string        { return "add" }
func (RemoveItem) Name() string     { return "remove" }
func (ToggleItem) Name() string     { return "toggle" }
func (SetQuantity) Name() string    { return "set-quantity" }
func (SetLabel) Name() string       { return "set-label" }
func (SetNote) Name() string        { return "set-note" }
func (AddCategory) Name() string    { return "add-category" }
func (RemoveCategory) Name() string { return "remove-category" }
func (ClearChecked) Name() string   { return "clear-checked" }
func (SetSearchInput) Name() string { return "set-search-input" }
func (SetShowChecked) Name() string { return "set-show-checked" }
