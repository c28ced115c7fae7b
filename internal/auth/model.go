package auth

// Role is the closed set of platform roles.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleTechnician   Role = "technician"
	RoleAdmin        Role = "admin"
	RoleShopOwner    Role = "shop_owner"
	RoleShopMechanic Role = "shop_mechanic"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTechnician, RoleAdmin, RoleShopOwner, RoleShopMechanic:
		return true
	}
	return false
}

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}
