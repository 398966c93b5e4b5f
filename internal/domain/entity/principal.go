package entity

// Principal usuario autenticado que realiza la petición.
type Principal struct {
	UserID int64
	RoleID int
}

// PrincipalOf construye el principal a partir del usuario recargado de la DB.
func PrincipalOf(u *User) Principal {
	return Principal{UserID: u.ID, RoleID: u.Role()}
}

func (p Principal) IsCoordinator() bool { return p.RoleID == RoleCoordinator }
func (p Principal) IsStudent() bool     { return p.RoleID == RoleStudent }
func (p Principal) IsCompany() bool     { return p.RoleID == RoleCompany }

// CanManage indica si el principal es dueño del recurso o coordinador.
func (p Principal) CanManage(ownerID int64) bool {
	return p.IsCoordinator() || (ownerID != 0 && p.UserID == ownerID)
}
