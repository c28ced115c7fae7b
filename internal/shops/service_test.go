package shops

import (
	"context"
	"strconv"
	"testing"

	"github.com/axis-meridian-dev/Luber-development/internal/payments"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	shop        *Shop
	technicians map[string]*Technician
	nextID      int
}

func NewMockRepository(tier payments.Tier) *MockRepository {
	return &MockRepository{
		shop: &Shop{
			ID:               "shop-1",
			OwnerID:          "owner-1",
			ShopName:         "Quick Lube",
			SubscriptionTier: tier,
		},
		technicians: make(map[string]*Technician),
		nextID:      1,
	}
}

func (m *MockRepository) GetByOwner(ctx context.Context, ownerID string) (*Shop, error) {
	if ownerID != m.shop.OwnerID {
		return nil, ErrShopNotFound
	}
	return m.shop, nil
}

func (m *MockRepository) IsOwner(ctx context.Context, shopID, userID string) (bool, error) {
	return shopID == m.shop.ID && userID == m.shop.OwnerID, nil
}

func (m *MockRepository) CreateTechnician(ctx context.Context, tech *Technician) error {
	tech.ID = "tech-" + strconv.Itoa(m.nextID)
	m.nextID++
	tech.IsActive = true
	m.technicians[tech.ID] = tech
	return nil
}

func (m *MockRepository) ListTechnicians(ctx context.Context, shopID string) ([]*Technician, error) {
	var out []*Technician
	for _, t := range m.technicians {
		if t.ShopID == shopID && t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockRepository) CountActiveTechnicians(ctx context.Context, shopID string) (int, error) {
	count := 0
	for _, t := range m.technicians {
		if t.ShopID == shopID && t.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *MockRepository) DeactivateTechnician(ctx context.Context, shopID, technicianID string) error {
	tech, ok := m.technicians[technicianID]
	if !ok || tech.ShopID != shopID {
		return ErrShopNotFound
	}
	tech.IsActive = false
	tech.IsAvailable = false
	return nil
}

func (m *MockRepository) SetTechnicianAvailability(ctx context.Context, shopID, technicianID string, available bool) error {
	tech, ok := m.technicians[technicianID]
	if !ok || tech.ShopID != shopID || !tech.IsActive {
		return ErrShopNotFound
	}
	tech.IsAvailable = available
	return nil
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestAddTechnician_SoloTierLimit(t *testing.T) {
	repo := NewMockRepository(payments.TierSolo)
	service := NewService(repo)

	_, err := service.AddTechnician(context.Background(), "owner-1", "p1", "LIC-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = service.AddTechnician(context.Background(), "owner-1", "p2", "LIC-2")
	if err == nil {
		t.Fatal("expected solo tier to reject a second technician")
	}
}

func TestAddTechnician_BusinessTierAllowsTen(t *testing.T) {
	repo := NewMockRepository(payments.TierBusiness)
	service := NewService(repo)

	for i := 0; i < 10; i++ {
		_, err := service.AddTechnician(context.Background(), "owner-1", "p"+strconv.Itoa(i), "LIC")
		if err != nil {
			t.Fatalf("unexpected error on technician %d: %v", i, err)
		}
	}

	_, err := service.AddTechnician(context.Background(), "owner-1", "p11", "LIC")
	if err == nil {
		t.Fatal("expected business tier to reject an 11th technician")
	}
}

func TestRemoveTechnician_SoftDeactivates(t *testing.T) {
	repo := NewMockRepository(payments.TierBusiness)
	service := NewService(repo)

	tech, err := service.AddTechnician(context.Background(), "owner-1", "p1", "LIC-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.RemoveTechnician(context.Background(), "owner-1", tech.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Row still present, merely inactive.
	stored := repo.technicians[tech.ID]
	if stored == nil {
		t.Fatal("technician row was deleted, expected soft deactivation")
	}
	if stored.IsActive {
		t.Error("expected is_active=false after removal")
	}

	// Deactivated technicians free up a roster slot.
	listed, _ := service.ListTechnicians(context.Background(), "owner-1")
	if len(listed) != 0 {
		t.Errorf("expected empty active roster, got %d", len(listed))
	}
}

func TestAddTechnician_UnknownOwner(t *testing.T) {
	service := NewService(NewMockRepository(payments.TierSolo))

	_, err := service.AddTechnician(context.Background(), "stranger", "p1", "LIC-1")
	if err == nil {
		t.Fatal("expected error for unknown owner")
	}
}
