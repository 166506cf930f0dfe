package user

import "testing"

func TestRoleCapabilityHierarchy(t *testing.T) {
	// Cada linha é uma capacidade e o menor papel interno que a possui;
	// papéis acima na hierarquia herdam tudo dos de baixo
	cases := []struct {
		cap      Capability
		operator bool
		manager  bool
		admin    bool
	}{
		{CapRecordMovements, true, true, true},
		{CapViewInventory, true, true, true},
		{CapManageOrders, true, true, true},
		{CapManageProducts, false, true, true},
		{CapManageBatches, false, true, true},
		{CapManageUsers, false, false, true},
	}

	for _, tc := range cases {
		if got := RoleOperator.Can(tc.cap); got != tc.operator {
			t.Errorf("operator.Can(%s) = %v, esperava %v", tc.cap, got, tc.operator)
		}
		if got := RoleManager.Can(tc.cap); got != tc.manager {
			t.Errorf("manager.Can(%s) = %v, esperava %v", tc.cap, got, tc.manager)
		}
		if got := RoleAdmin.Can(tc.cap); got != tc.admin {
			t.Errorf("admin.Can(%s) = %v, esperava %v", tc.cap, got, tc.admin)
		}
	}
}

func TestCustomerOnlyPlacesOrders(t *testing.T) {
	if !RoleCustomer.Can(CapPlaceOrders) {
		t.Error("cliente deveria poder fazer pedidos")
	}
	for _, c := range []Capability{CapManageProducts, CapManageBatches, CapRecordMovements, CapViewInventory, CapManageOrders, CapManageUsers} {
		if RoleCustomer.Can(c) {
			t.Errorf("cliente não deveria ter %s", c)
		}
	}
	// Papéis internos não compram pela loja
	if RoleAdmin.Can(CapPlaceOrders) {
		t.Error("admin não deveria ter place_orders")
	}
}

func TestUnknownRoleHasNoCapabilities(t *testing.T) {
	if Role("intruso").Can(CapViewInventory) {
		t.Error("papel desconhecido não deveria ter capacidade alguma")
	}
}
