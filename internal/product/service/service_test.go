package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"product_service_backend/internal/product/domain"
	"product_service_backend/platform/apperr"
	"product_service_backend/platform/logger"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	products map[uuid.UUID]domain.Product
	cards    map[uuid.UUID]domain.DebitCard
	saves    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[uuid.UUID]domain.Product),
		cards:    make(map[uuid.UUID]domain.DebitCard),
	}
}

func (s *fakeStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	items := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		items = append(items, p)
	}
	return items, nil
}

func (s *fakeStore) FindByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, apperr.NotFound("product not found")
	}
	return p, nil
}

func (s *fakeStore) FindByClientID(ctx context.Context, clientID string) ([]domain.Product, error) {
	items := make([]domain.Product, 0)
	for _, p := range s.products {
		if p.ClientID == clientID {
			items = append(items, p)
		}
	}
	return items, nil
}

func (s *fakeStore) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.Balance == nil {
		zero := 0.0
		product.Balance = &zero
	}
	if product.Status == "" {
		product.Status = domain.StatusActive
	}
	s.products[product.ID] = product
	s.saves++
	return product, nil
}

func (s *fakeStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	delete(s.products, id)
	return nil
}

func (s *fakeStore) SaveDebitCard(ctx context.Context, card domain.DebitCard) (domain.DebitCard, error) {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	s.cards[card.ID] = card
	return card, nil
}

func (s *fakeStore) FindDebitCardByID(ctx context.Context, id uuid.UUID) (domain.DebitCard, error) {
	card, ok := s.cards[id]
	if !ok {
		return domain.DebitCard{}, apperr.NotFound("debit card not found")
	}
	return card, nil
}

func (s *fakeStore) FindAllDebitCards(ctx context.Context) ([]domain.DebitCard, error) {
	items := make([]domain.DebitCard, 0, len(s.cards))
	for _, card := range s.cards {
		items = append(items, card)
	}
	return items, nil
}

// fakeGateway is a canned ClientGateway.
type fakeGateway struct {
	profile domain.ClientProfile
	err     error
	calls   int
}

func (g *fakeGateway) Fetch(ctx context.Context, clientID string) (domain.ClientProfile, error) {
	g.calls++
	if g.err != nil {
		return domain.ClientProfile{}, g.err
	}
	return g.profile, nil
}

func newTestService(store *fakeStore, gateway *fakeGateway) *Service {
	return New(store, gateway, logger.New("test"), nil)
}

func TestCreatePersistsApprovedProduct(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{profile: domain.ClientProfile{
		ID: "c1", Type: domain.ClientTypePersonal, Subtype: domain.ClientSubtypeStandard,
	}}
	svc := newTestService(store, gateway)

	candidate := domain.Product{
		Type:     domain.TypeLiability,
		Subtype:  domain.SubtypeSavings,
		ClientID: "c1",
	}

	saved, err := svc.Create(context.Background(), candidate)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if saved.ID == uuid.Nil {
		t.Fatal("expected an assigned id")
	}
	if saved.Balance == nil || *saved.Balance != 0 {
		t.Fatalf("expected balance defaulted to 0, got %v", saved.Balance)
	}
	if saved.Status != domain.StatusActive {
		t.Fatalf("expected status %q, got %q", domain.StatusActive, saved.Status)
	}
	if gateway.calls != 1 {
		t.Fatalf("expected one gateway call, got %d", gateway.calls)
	}
	if _, ok := store.products[saved.ID]; !ok {
		t.Fatal("product not persisted")
	}
}

func TestCreateRejectionDoesNotPersist(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{profile: domain.ClientProfile{
		ID: "c1", Type: domain.ClientTypeBusiness, Subtype: domain.ClientSubtypeStandard,
	}}
	svc := newTestService(store, gateway)

	candidate := domain.Product{
		Type:     domain.TypeLiability,
		Subtype:  domain.SubtypeSavings,
		ClientID: "c1",
	}

	_, err := svc.Create(context.Background(), candidate)
	if err == nil {
		t.Fatal("expected a rejection")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if appErr.Message != "business client cannot hold savings or fixed-term accounts" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
	if store.saves != 0 {
		t.Fatalf("expected no save, got %d", store.saves)
	}
}

func TestCreateBlockedByOverdueDebtBeforeGatewayCall(t *testing.T) {
	store := newFakeStore()
	overdue := domain.Product{
		ID:       uuid.New(),
		Type:     domain.TypeAsset,
		Subtype:  domain.SubtypePersonalCredit,
		ClientID: "c1",
		Status:   domain.StatusOverdue,
	}
	store.products[overdue.ID] = overdue

	gateway := &fakeGateway{profile: domain.ClientProfile{
		ID: "c1", Type: domain.ClientTypePersonal, Subtype: domain.ClientSubtypeStandard,
	}}
	svc := newTestService(store, gateway)

	candidate := domain.Product{
		Type:     domain.TypeLiability,
		Subtype:  domain.SubtypeSavings,
		ClientID: "c1",
	}

	_, err := svc.Create(context.Background(), candidate)
	if err == nil {
		t.Fatal("expected a rejection")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if appErr.Message != "client has overdue debt" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
	if gateway.calls != 0 {
		t.Fatalf("expected the gateway to never be invoked, got %d calls", gateway.calls)
	}
}

func TestCreatePropagatesGatewayError(t *testing.T) {
	store := newFakeStore()
	unavailable := apperr.Unavailable("client service is currently unavailable", errors.New("connection refused"))
	gateway := &fakeGateway{err: unavailable}
	svc := newTestService(store, gateway)

	candidate := domain.Product{
		Type:     domain.TypeLiability,
		Subtype:  domain.SubtypeSavings,
		ClientID: "c1",
	}

	_, err := svc.Create(context.Background(), candidate)
	if !errors.Is(err, unavailable) {
		t.Fatalf("expected the gateway error unchanged, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("expected no save, got %d", store.saves)
	}
}

func TestUpdateKeepsPathID(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGateway{})

	existing, err := store.Save(context.Background(), domain.Product{
		Type:     domain.TypeLiability,
		Subtype:  domain.SubtypeSavings,
		ClientID: "c1",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	payload := domain.Product{
		ID:       uuid.New(), // body id is ignored
		Type:     domain.TypeLiability,
		Subtype:  domain.SubtypeSavings,
		ClientID: "c1",
		Balance:  floatPtr(150),
	}

	updated, err := svc.Update(context.Background(), existing.ID, payload)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != existing.ID {
		t.Fatalf("expected path id %s to win, got %s", existing.ID, updated.ID)
	}
	if updated.Balance == nil || *updated.Balance != 150 {
		t.Fatalf("expected balance 150, got %v", updated.Balance)
	}
}

func TestUpdateMissingProductDoesNotWrite(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGateway{})

	_, err := svc.Update(context.Background(), uuid.New(), domain.Product{
		Type:     domain.TypeLiability,
		Subtype:  domain.SubtypeSavings,
		ClientID: "c1",
	})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("expected no save, got %d", store.saves)
	}
}

func TestDeleteAbsentProductSucceeds(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGateway{})

	if err := svc.Delete(context.Background(), uuid.New()); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestMarkOverdueBlocksFutureCreations(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{profile: domain.ClientProfile{
		ID: "c1", Type: domain.ClientTypePersonal, Subtype: domain.ClientSubtypeStandard,
	}}
	svc := newTestService(store, gateway)

	credit, err := store.Save(context.Background(), domain.Product{
		Type:     domain.TypeAsset,
		Subtype:  domain.SubtypePersonalCredit,
		ClientID: "c1",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	marked, err := svc.MarkOverdue(context.Background(), credit.ID)
	if err != nil {
		t.Fatalf("mark overdue: %v", err)
	}
	if marked.Status != domain.StatusOverdue {
		t.Fatalf("expected status %q, got %q", domain.StatusOverdue, marked.Status)
	}

	_, err = svc.Create(context.Background(), domain.Product{
		Type:     domain.TypeLiability,
		Subtype:  domain.SubtypeSavings,
		ClientID: "c1",
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected a validation rejection, got %v", err)
	}
}

func TestMainAccountBalance(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGateway{})

	account, err := store.Save(context.Background(), domain.Product{
		Type:     domain.TypeLiability,
		Subtype:  domain.SubtypeSavings,
		ClientID: "c1",
		Balance:  floatPtr(320.5),
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	card, err := svc.CreateDebitCard(context.Background(), domain.DebitCard{
		ClientID:      "c1",
		MainAccountID: account.ID,
	})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if card.ID == uuid.Nil {
		t.Fatal("expected an assigned card id")
	}

	balance, err := svc.MainAccountBalance(context.Background(), card.ID)
	if err != nil {
		t.Fatalf("main account balance: %v", err)
	}
	if balance != 320.5 {
		t.Fatalf("expected balance 320.5, got %v", balance)
	}
}

func TestMainAccountBalanceMissingCard(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGateway{})

	_, err := svc.MainAccountBalance(context.Background(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
