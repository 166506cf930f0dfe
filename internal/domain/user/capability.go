package user

// Capability representa uma permissão mínima exigida por uma operação.
// Cada rota declara a capacidade que exige e um único avaliador resolve o
// conjunto de capacidades de cada papel, em vez de regras de hierarquia
// espalhadas pelos handlers
type Capability string

const (
	CapManageProducts  Capability = "manage_products"
	CapManageBatches   Capability = "manage_batches"
	CapRecordMovements Capability = "record_movements"
	CapViewInventory   Capability = "view_inventory"
	CapManageOrders    Capability = "manage_orders"
	CapManageUsers     Capability = "manage_users"
	CapPlaceOrders     Capability = "place_orders"
)

// roleCapabilities mapeia cada papel para seu conjunto de capacidades.
// A hierarquia admin ⊇ manager ⊇ operator é materializada aqui uma única
// vez
var roleCapabilities = map[Role]map[Capability]bool{
	RoleOperator: capSet(
		CapRecordMovements,
		CapViewInventory,
		CapManageOrders,
	),
	RoleCustomer: capSet(
		CapPlaceOrders,
	),
}

func init() {
	manager := capSet(CapManageProducts, CapManageBatches)
	for c := range roleCapabilities[RoleOperator] {
		manager[c] = true
	}
	roleCapabilities[RoleManager] = manager

	admin := capSet(CapManageUsers)
	for c := range manager {
		admin[c] = true
	}
	roleCapabilities[RoleAdmin] = admin
}

func capSet(caps ...Capability) map[Capability]bool {
	set := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	return set
}

// Can verifica se o papel possui a capacidade informada
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// Capabilities retorna as capacidades do papel
func (r Role) Capabilities() []Capability {
	set := roleCapabilities[r]
	caps := make([]Capability, 0, len(set))
	for c := range set {
		caps = append(caps, c)
	}
	return caps
}
