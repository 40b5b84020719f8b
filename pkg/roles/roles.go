package roles

// Role is the permission level of an account.
type Role string

const (
	Donor     Role = "donor"
	Requester Role = "requester"
	Admin     Role = "admin"
)

type HierarchyLevel int

const (
	DonorLevel     HierarchyLevel = 1
	RequesterLevel HierarchyLevel = 2
	AdminLevel     HierarchyLevel = 3
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Donor:
		return DonorLevel
	case Requester:
		return RequesterLevel
	case Admin:
		return AdminLevel
	default:
		return DonorLevel
	}
}

func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case Donor, Requester, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
