package access

type Capability string

const (
	CanView   Capability = "can_view"
	CanCreate Capability = "can_create"
	CanEdit   Capability = "can_edit"
	CanDelete Capability = "can_delete"
)

type CapabilityDef struct {
	Codename Capability
	Name     string
}

var Capabilities = []CapabilityDef{
	{CanView, "Can view book"},
	{CanCreate, "Can create book"},
	{CanEdit, "Can edit book"},
	{CanDelete, "Can delete book"},
}

func IsCapability(s string) bool {
	for _, c := range Capabilities {
		if string(c.Codename) == s {
			return true
		}
	}
	return false
}

type GroupDef struct {
	Name         string
	Capabilities []Capability
}

var DefaultGroups = []GroupDef{
	{Name: "Book_Viewers", Capabilities: []Capability{CanView}},
	{Name: "Book_Editors", Capabilities: []Capability{CanView, CanCreate, CanEdit}},
	{Name: "Book_Admins", Capabilities: []Capability{CanView, CanCreate, CanEdit, CanDelete}},
}

// CapabilityFor is the capability a library book operation requires.
func CapabilityFor(op Operation) Capability {
	switch op {
	case Create:
		return CanCreate
	case Update:
		return CanEdit
	case Delete:
		return CanDelete
	default:
		return CanView
	}
}
