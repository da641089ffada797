package property

import (
	"path/filepath"
	"testing"

	"github.com/jsteiner/grundwerk/internal/db"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return NewRepository(d)
}

func TestInsertAndGetByID(t *testing.T) {
	repo := testRepo(t)

	p := &Property{
		Address:       "Leopoldstraße 12",
		City:          "Munich",
		LivingArea:    74.5,
		PurchasePrice: 420000,
	}

	saved, err := repo.Insert(p)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if saved.CurrentPhase != 1 {
		t.Errorf("current phase = %d, want 1", saved.CurrentPhase)
	}
	if saved.SalesChannel != ChannelInternal {
		t.Errorf("sales channel = %s, want internal", saved.SalesChannel)
	}

	got, err := repo.GetByID(saved.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Address != "Leopoldstraße 12" {
		t.Errorf("address = %q, want %q", got.Address, "Leopoldstraße 12")
	}
	if got.LivingArea != 74.5 {
		t.Errorf("living area = %v, want 74.5", got.LivingArea)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.GetByID(9999)
	if err == nil {
		t.Fatal("expected error for missing property")
	}
}

func TestInsertWithFullSnapshot(t *testing.T) {
	repo := testRepo(t)

	class := "B"
	consumption := 85.0
	heating := "district heating"
	year := int64(1998)
	rent := 1250.0

	p := &Property{
		Address:           "Amselweg 4",
		City:              "Berlin",
		EnergyClass:       &class,
		EnergyConsumption: &consumption,
		HeatingType:       &heating,
		ConstructionYear:  &year,
		LivingArea:        88,
		PurchasePrice:     350000,
		RenovationBudget:  40000,
		MonthlyRent:       &rent,
		HOALandlord:       120,
		HOATenant:         60,
		HOAReserve:        90,
	}

	saved, err := repo.Insert(p)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if saved.EnergyClass == nil || *saved.EnergyClass != "B" {
		t.Errorf("energy class = %v, want B", saved.EnergyClass)
	}
	if saved.MonthlyRent == nil || *saved.MonthlyRent != rent {
		t.Errorf("monthly rent = %v, want %v", saved.MonthlyRent, rent)
	}
	if saved.HOAReserve != 90 {
		t.Errorf("hoa reserve = %v, want 90", saved.HOAReserve)
	}

	snap := saved.Snapshot()
	if !snap.HasMinimalData() {
		t.Error("expected minimal data present")
	}
	if snap.AnnualRent() != rent*12 {
		t.Errorf("annual rent = %v, want %v", snap.AnnualRent(), rent*12)
	}
}

func TestRoomRentsRoundTrip(t *testing.T) {
	repo := testRepo(t)

	p := &Property{
		Address:       "WG-Objekt Hafenstraße 9",
		City:          "Hamburg",
		LivingArea:    120,
		PurchasePrice: 480000,
		RoomRents:     []float64{450, 480, 520, 390},
	}

	saved, err := repo.Insert(p)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(saved.RoomRents) != 4 {
		t.Fatalf("room rents = %d, want 4", len(saved.RoomRents))
	}
	if got := saved.Snapshot().AnnualRent(); got != (450+480+520+390)*12 {
		t.Errorf("annual rent = %v", got)
	}
}

func TestInsertRejectsUnknownChannel(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.Insert(&Property{Address: "x", SalesChannel: "broker"})
	if err == nil {
		t.Fatal("expected error for unknown sales channel")
	}
}

func TestListFilters(t *testing.T) {
	repo := testRepo(t)

	p1, err := repo.Insert(&Property{Address: "a", City: "Berlin", LivingArea: 50, PurchasePrice: 200000})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert(&Property{Address: "b", City: "Berlin", LivingArea: 60, PurchasePrice: 220000, SalesChannel: ChannelPartner}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	partner, err := repo.List(ListOptions{SalesChannel: ChannelPartner})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(partner) != 1 || partner[0].Address != "b" {
		t.Errorf("partner list = %v", partner)
	}

	one := 1
	phase1, err := repo.List(ListOptions{Phase: &one})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(phase1) != 2 {
		t.Errorf("phase 1 list = %d, want 2", len(phase1))
	}

	if err := repo.Delete(p1.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, err := repo.List(ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("list after delete = %d, want 1", len(all))
	}
}

func TestUpdateFinancials(t *testing.T) {
	repo := testRepo(t)

	p, err := repo.Insert(&Property{Address: "c", City: "Berlin", LivingArea: 50, PurchasePrice: 200000})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	rent := 950.0
	if err := repo.UpdateFinancials(p.ID, 210000, 25000, &rent, nil); err != nil {
		t.Fatalf("update financials: %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PurchasePrice != 210000 || got.RenovationBudget != 25000 {
		t.Errorf("financials = %v/%v", got.PurchasePrice, got.RenovationBudget)
	}
	if got.MonthlyRent == nil || *got.MonthlyRent != 950 {
		t.Errorf("monthly rent = %v, want 950", got.MonthlyRent)
	}

	if err := repo.UpdateFinancials(9999, 1, 1, nil, nil); err == nil {
		t.Error("expected error for missing property")
	}
}
