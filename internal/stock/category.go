package stock

import "fmt"

// Category identifies one of the tracked stock domains. Its string value is
// the slug used for persisted files, custom IDs and command option values.
type Category string

const (
	Weapons Category = "armas"
	Drugs   Category = "drogas"
	Funds   Category = "fondos"
)

// Categories returns all categories in their fixed display order.
func Categories() []Category {
	return []Category{Weapons, Drugs, Funds}
}

// ParseCategory resolves a slug to a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Weapons, Drugs, Funds:
		return Category(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) DisplayName() string {
	switch c {
	case Weapons:
		return "Armas"
	case Drugs:
		return "Drogas"
	case Funds:
		return "Fondos"
	}
	return string(c)
}

func (c Category) Icon() string {
	switch c {
	case Weapons:
		return "🔫"
	case Drugs:
		return "💊"
	case Funds:
		return "💰"
	}
	return ""
}

// Color is the embed accent color for the category.
func (c Category) Color() int {
	switch c {
	case Weapons:
		return 0x00d0fe
	case Drugs:
		return 0xff0000
	case Funds:
		return 0x000000
	}
	return 0
}

// ResourceCatalog lists the resources usually tracked under the category.
// Informational only: movements may name resources outside the catalog.
func (c Category) ResourceCatalog() []string {
	switch c {
	case Weapons:
		return []string{"Vitage", "Walter", "AK47", "Colt"}
	case Drugs:
		return []string{"Meta", "Maria", "Coca", "Heroina"}
	case Funds:
		return []string{"Dinero Blanco 💵", "Dinero Negro 🧳"}
	}
	return nil
}

// Locations returns the fixed list of known storage locations.
func Locations() []string {
	return []string{"Bodega", "Tiendita", "Oficina", "Calle", "Guarida"}
}

// DefaultLocation is used when a movement does not name a location.
const DefaultLocation = "Sin especificar"
