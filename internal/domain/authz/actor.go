package authz

// Actor identifica al usuario que ejecuta una acción (viene del JWT).
type Actor struct {
	ID   string
	Role string
}
