package service

import (
	"context"

	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

// stubRepo embeds the interface so each test overrides only what it touches;
// calling anything else panics, which is the point.
type stubRepo struct {
	repository.Repository

	users        []models.User
	nextUserID   uint64
	transactions map[uint64][]models.Transaction
	messages     []models.Message
	inquiries    []models.Inquiry
	fundSchemes  []models.FundScheme
	snapshots    []models.PortfolioSnapshot
	syncStates   map[string]models.SyncState
	catalogRows  []models.CatalogSymbol
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		transactions: map[uint64][]models.Transaction{},
		syncStates:   map[string]models.SyncState{},
	}
}

func (s *stubRepo) CreateUser(_ context.Context, item *models.User) error {
	s.nextUserID++
	item.ID = s.nextUserID
	s.users = append(s.users, *item)
	return nil
}

func (s *stubRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for i := range s.users {
		if s.users[i].Username == username {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ListTransactionsByUser(_ context.Context, userID uint64) ([]models.Transaction, error) {
	return s.transactions[userID], nil
}

func (s *stubRepo) ListUserIDsWithTransactions(_ context.Context) ([]uint64, error) {
	ids := make([]uint64, 0, len(s.transactions))
	for id := range s.transactions {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *stubRepo) InsertMessage(_ context.Context, item *models.Message) error {
	item.ID = uint64(len(s.messages) + 1)
	s.messages = append(s.messages, *item)
	return nil
}

func (s *stubRepo) ListMessagesByUser(_ context.Context, userID uint64) ([]models.Message, error) {
	var out []models.Message
	for _, m := range s.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubRepo) InsertInquiry(_ context.Context, item *models.Inquiry) error {
	item.ID = uint64(len(s.inquiries) + 1)
	s.inquiries = append(s.inquiries, *item)
	return nil
}

func (s *stubRepo) UpsertFundSchemes(_ context.Context, items []models.FundScheme) error {
	s.fundSchemes = append(s.fundSchemes, items...)
	return nil
}

func (s *stubRepo) InsertPortfolioSnapshot(_ context.Context, item *models.PortfolioSnapshot) error {
	s.snapshots = append(s.snapshots, *item)
	return nil
}

func (s *stubRepo) SaveSyncState(_ context.Context, state *models.SyncState) error {
	s.syncStates[state.Scope] = *state
	return nil
}

func (s *stubRepo) UpsertCatalogSymbols(_ context.Context, items []models.CatalogSymbol) error {
	s.catalogRows = append(s.catalogRows, items...)
	return nil
}
