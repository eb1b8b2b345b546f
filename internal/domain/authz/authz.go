// Package authz implementa el chequeo de capacidades por rol que antecede a
// cada mutador de stock. Se inyecta en los casos de uso en lugar de consultar
// un estado global de permisos.
package authz

import "github.com/clinivac/npwt-inventario/internal/domain/entity"

// Acciones gateadas por rol.
const (
	ActionCreateProduct = "product:create"
	ActionEditProduct   = "product:edit"
	ActionStockEntry    = "inventory:stock_entry"
	ActionConsume       = "procedure:consume"
	ActionManageClinic  = "clinic:manage" // pacientes, máquinas, procedimientos
)

// Checker decide si un rol puede ejecutar una acción.
type Checker interface {
	Can(role, action string) bool
}

// RoleChecker implementación por tabla estática de capacidades.
type RoleChecker struct {
	grants map[string]map[string]bool
}

// NewRoleChecker construye el checker con la matriz de permisos del sistema:
// admin todo; bodega gestiona inventario; enfermería gestiona clínica y consumo.
func NewRoleChecker() *RoleChecker {
	inventoryActions := []string{ActionCreateProduct, ActionEditProduct, ActionStockEntry}
	clinicActions := []string{ActionConsume, ActionManageClinic}

	grants := map[string]map[string]bool{
		entity.RoleAdmin:      {},
		entity.RoleBodega:     {},
		entity.RoleEnfermeria: {},
	}
	for _, a := range append(append([]string{}, inventoryActions...), clinicActions...) {
		grants[entity.RoleAdmin][a] = true
	}
	for _, a := range inventoryActions {
		grants[entity.RoleBodega][a] = true
	}
	for _, a := range clinicActions {
		grants[entity.RoleEnfermeria][a] = true
	}
	return &RoleChecker{grants: grants}
}

// Can reporta si el rol tiene la capacidad. Roles desconocidos no tienen ninguna.
func (c *RoleChecker) Can(role, action string) bool {
	caps, ok := c.grants[role]
	if !ok {
		return false
	}
	return caps[action]
}
