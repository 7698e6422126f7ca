package stock

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction of a stock movement.
type Direction string

const (
	In  Direction = "entrada"
	Out Direction = "salida"
)

// Movement is a single in/out adjustment against one ledger cell. It is
// ephemeral: only the resulting counts are persisted.
type Movement struct {
	Category  Category
	Direction Direction
	Resource  string
	Quantity  int
	Location  string
	Note      string
}

// NewMovement validates raw form input and builds a Movement. Direction is
// matched case-insensitively against the two canonical values, quantity must
// parse to a positive integer and the location defaults to DefaultLocation
// when blank.
func NewMovement(category Category, direction, resource, quantity, location, note string) (Movement, error) {
	dir := Direction(strings.ToLower(strings.TrimSpace(direction)))
	if dir != In && dir != Out {
		return Movement{}, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	resource = strings.TrimSpace(resource)
	if resource == "" {
		return Movement{}, ErrEmptyResource
	}

	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil || qty <= 0 {
		return Movement{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, quantity)
	}

	location = strings.TrimSpace(location)
	if location == "" {
		location = DefaultLocation
	}

	return Movement{
		Category:  category,
		Direction: dir,
		Resource:  resource,
		Quantity:  qty,
		Location:  location,
		Note:      strings.TrimSpace(note),
	}, nil
}
