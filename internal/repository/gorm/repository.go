package gormrepository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- users -------------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, item *models.User) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.User
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateUserSettings(ctx context.Context, id uint64, settings []byte) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("settings", settings).Error
}

// --- ledger ------------------------------------------------------------------

func (s *Store) InsertTransaction(ctx context.Context, item *models.Transaction) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListTransactionsByUser(ctx context.Context, userID uint64) ([]models.Transaction, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Transaction
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Transaction{}, id)
	return res.RowsAffected, res.Error
}

func (s *Store) ListUserIDsWithTransactions(ctx context.Context) ([]uint64, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var ids []uint64
	if err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Distinct("user_id").
		Order("user_id asc").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --- watchlist ---------------------------------------------------------------

func (s *Store) UpsertWatchItem(ctx context.Context, item *models.WatchlistItem) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Symbol = strings.ToUpper(strings.TrimSpace(item.Symbol))
	if item.Symbol == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"alias"}),
	}).Create(item).Error
}

func (s *Store) DeleteWatchItem(ctx context.Context, userID uint64, symbol string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, strings.ToUpper(strings.TrimSpace(symbol))).
		Delete(&models.WatchlistItem{})
	return res.RowsAffected, res.Error
}

func (s *Store) ListWatchItems(ctx context.Context, userID uint64) ([]models.WatchlistItem, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.WatchlistItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("symbol asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- posts -------------------------------------------------------------------

func (s *Store) InsertPost(ctx context.Context, item *models.Post) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetPostByID(ctx context.Context, id uint64) (*models.Post, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Post
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListPosts(ctx context.Context, params repository.ListPostsParams) ([]models.Post, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Post{})
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.Post
	if err := query.Order("updated_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdatePostStatus(ctx context.Context, id, userID uint64, status string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// --- messages ----------------------------------------------------------------

func (s *Store) InsertMessage(ctx context.Context, item *models.Message) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListMessagesByUser(ctx context.Context, userID uint64) ([]models.Message, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Message
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountUnreadMessages(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("role = ? AND seen = false", models.MessageRoleUser).
		Count(&n).Error
	return n, err
}

func (s *Store) MarkMessagesSeen(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("role = ? AND seen = false", models.MessageRoleUser).
		Update("seen", true)
	return res.RowsAffected, res.Error
}

// --- inquiries ---------------------------------------------------------------

func (s *Store) InsertInquiry(ctx context.Context, item *models.Inquiry) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListInquiries(ctx context.Context, params repository.ListInquiriesParams) ([]models.Inquiry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.Inquiry
	if err := s.db.WithContext(ctx).
		Order("id desc").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- screener catalog --------------------------------------------------------

func (s *Store) UpsertCatalogSymbols(ctx context.Context, items []models.CatalogSymbol) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "type", "country", "sector", "updated_at"}),
	}).CreateInBatches(items, 200).Error
}

func (s *Store) SearchCatalogSymbols(ctx context.Context, params repository.SearchCatalogSymbolsParams) ([]models.CatalogSymbol, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.CatalogSymbol{})
	if q := strings.TrimSpace(params.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(symbol) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	if len(params.Countries) > 0 {
		query = query.Where("country IN ?", params.Countries)
	}
	if len(params.Types) > 0 {
		query = query.Where("type IN ?", params.Types)
	}
	if len(params.Sectors) > 0 {
		query = query.Where("sector IN ?", params.Sectors)
	}
	limit := normalizeLimit(params.Limit, 100)
	var items []models.CatalogSymbol
	if err := query.Order("symbol asc").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- fund registry -----------------------------------------------------------

func (s *Store) UpsertFundSchemes(ctx context.Context, items []models.FundScheme) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "scheme_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"scheme_name",
			"amc",
			"category",
			"plan",
			"isin_growth",
			"isin_div_payout",
			"isin_div_reinvest",
			"nav",
			"nav_date",
			"last_seen_at",
		}),
	}).CreateInBatches(items, 500).Error
}

func (s *Store) SearchFundSchemes(ctx context.Context, params repository.SearchFundSchemesParams) ([]models.FundScheme, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.FundScheme{})
	if q := strings.TrimSpace(params.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(scheme_name) LIKE ? OR CAST(scheme_code AS TEXT) LIKE ?", like, like)
	}
	if amc := strings.TrimSpace(params.AMC); amc != "" {
		query = query.Where("LOWER(amc) LIKE ?", "%"+strings.ToLower(amc)+"%")
	}
	if cat := strings.TrimSpace(params.Category); cat != "" {
		query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(cat)+"%")
	}
	limit := normalizeLimit(params.Limit, 100)
	var items []models.FundScheme
	if err := query.Order("scheme_name asc").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListFundSchemesByCodes(ctx context.Context, codes []uint64) ([]models.FundScheme, error) {
	if s == nil || s.db == nil || len(codes) == 0 {
		return nil, nil
	}
	var items []models.FundScheme
	if err := s.db.WithContext(ctx).
		Where("scheme_code IN ?", codes).
		Order("scheme_name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountFundSchemes(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var n int64
	err := s.db.WithContext(ctx).Model(&models.FundScheme{}).Count(&n).Error
	return n, err
}

// --- fund watchlist ----------------------------------------------------------

func (s *Store) UpsertFundWatchItem(ctx context.Context, item *models.FundWatchItem) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "scheme_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"scheme_name"}),
	}).Create(item).Error
}

func (s *Store) DeleteFundWatchItem(ctx context.Context, userID, schemeCode uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND scheme_code = ?", userID, schemeCode).
		Delete(&models.FundWatchItem{})
	return res.RowsAffected, res.Error
}

func (s *Store) ListFundWatchItems(ctx context.Context, userID uint64) ([]models.FundWatchItem, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.FundWatchItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheme_name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- portfolio snapshots -----------------------------------------------------

func (s *Store) InsertPortfolioSnapshot(ctx context.Context, item *models.PortfolioSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListPortfolioSnapshots(ctx context.Context, params repository.ListPortfolioSnapshotsParams) ([]models.PortfolioSnapshot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.PortfolioSnapshot{}).
		Where("user_id = ?", params.UserID)
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("snapshot_at >= ?", *params.Since)
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("snapshot_at <= ?", *params.Until)
	}
	limit := normalizeLimit(params.Limit, 168)
	offset := normalizeOffset(params.Offset)
	var items []models.PortfolioSnapshot
	if err := query.Order("snapshot_at asc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- sync bookkeeping --------------------------------------------------------

func (s *Store) GetSyncState(ctx context.Context, scope string) (*models.SyncState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.SyncState
	err := s.db.WithContext(ctx).Where("scope = ?", scope).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SaveSyncState(ctx context.Context, state *models.SyncState) error {
	if s == nil || s.db == nil || state == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_run_at", "last_count", "last_error", "updated_at"}),
	}).Create(state).Error
}

// --- helpers -----------------------------------------------------------------

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
