package repository

import (
	"context"
	"time"

	"github.com/PShah260898/PRS-FinSight/internal/models"
)

type ListPostsParams struct {
	UserID *uint64
	Status *string
	Limit  int
	Offset int
}

type SearchFundSchemesParams struct {
	Query    string
	AMC      string
	Category string
	Limit    int
}

type SearchCatalogSymbolsParams struct {
	Query     string
	Countries []string
	Types     []string
	Sectors   []string
	Limit     int
}

type ListInquiriesParams struct {
	Limit  int
	Offset int
}

type ListPortfolioSnapshotsParams struct {
	UserID uint64
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}

// Repository is the persistence boundary for the service. The ledger portion
// is append-only: transactions are created and listed, never updated.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, item *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint64) (*models.User, error)
	UpdateUserSettings(ctx context.Context, id uint64, settings []byte) error

	// Ledger
	InsertTransaction(ctx context.Context, item *models.Transaction) error
	ListTransactionsByUser(ctx context.Context, userID uint64) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id uint64) (int64, error)
	ListUserIDsWithTransactions(ctx context.Context) ([]uint64, error)

	// Watchlist
	UpsertWatchItem(ctx context.Context, item *models.WatchlistItem) error
	DeleteWatchItem(ctx context.Context, userID uint64, symbol string) (int64, error)
	ListWatchItems(ctx context.Context, userID uint64) ([]models.WatchlistItem, error)

	// Posts
	InsertPost(ctx context.Context, item *models.Post) error
	GetPostByID(ctx context.Context, id uint64) (*models.Post, error)
	ListPosts(ctx context.Context, params ListPostsParams) ([]models.Post, error)
	UpdatePostStatus(ctx context.Context, id, userID uint64, status string) (int64, error)

	// Messages
	InsertMessage(ctx context.Context, item *models.Message) error
	ListMessagesByUser(ctx context.Context, userID uint64) ([]models.Message, error)
	CountUnreadMessages(ctx context.Context) (int64, error)
	MarkMessagesSeen(ctx context.Context) (int64, error)

	// Inquiries
	InsertInquiry(ctx context.Context, item *models.Inquiry) error
	ListInquiries(ctx context.Context, params ListInquiriesParams) ([]models.Inquiry, error)

	// Screener catalog
	UpsertCatalogSymbols(ctx context.Context, items []models.CatalogSymbol) error
	SearchCatalogSymbols(ctx context.Context, params SearchCatalogSymbolsParams) ([]models.CatalogSymbol, error)

	// Fund registry
	UpsertFundSchemes(ctx context.Context, items []models.FundScheme) error
	SearchFundSchemes(ctx context.Context, params SearchFundSchemesParams) ([]models.FundScheme, error)
	ListFundSchemesByCodes(ctx context.Context, codes []uint64) ([]models.FundScheme, error)
	CountFundSchemes(ctx context.Context) (int64, error)

	// Fund watchlist
	UpsertFundWatchItem(ctx context.Context, item *models.FundWatchItem) error
	DeleteFundWatchItem(ctx context.Context, userID, schemeCode uint64) (int64, error)
	ListFundWatchItems(ctx context.Context, userID uint64) ([]models.FundWatchItem, error)

	// Portfolio snapshots
	InsertPortfolioSnapshot(ctx context.Context, item *models.PortfolioSnapshot) error
	ListPortfolioSnapshots(ctx context.Context, params ListPortfolioSnapshotsParams) ([]models.PortfolioSnapshot, error)

	// Sync bookkeeping
	GetSyncState(ctx context.Context, scope string) (*models.SyncState, error)
	SaveSyncState(ctx context.Context, state *models.SyncState) error
}
