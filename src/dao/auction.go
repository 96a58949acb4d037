package dao

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kitbid/KitBidBackend/src/model"
	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
)

const CacheAuctionCountPrefix = "cache:kb:auction:count:"
const cacheAuctionCountTTL = 30 // seconds

// AuctionFilter narrows and pages the public auction listing.
type AuctionFilter struct {
	Status      string `json:"status"`
	Category    string `json:"category"`
	Team        string `json:"team"`
	ListingType string `json:"listing_type"`
	Sort        string `json:"sort"`
	Page        int    `json:"-"`
	PageSize    int    `json:"-"`
}

func getAuctionCountCacheKey(filter *AuctionFilter) (string, error) {
	uid, err := json.Marshal(filter)
	if err != nil {
		return "", errors.Wrap(err, "failed on marshal auction filter")
	}
	return CacheAuctionCountPrefix + string(uid), nil
}

func (d *Dao) CreateAuction(ctx context.Context, auction *model.Auction) error {
	if err := d.DB.WithContext(ctx).Create(auction).Error; err != nil {
		return errors.Wrap(err, "failed on create auction")
	}
	return nil
}

func (d *Dao) GetAuctionByID(ctx context.Context, auctionID string) (*model.Auction, error) {
	var auction model.Auction
	if err := d.DB.WithContext(ctx).
		Where("id = ?", auctionID).
		Take(&auction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrAuctionNotFound
		}
		return nil, errors.Wrap(err, "failed on get auction")
	}
	return &auction, nil
}

// IncrementViews bumps the view counter without touching the rest of the row.
func (d *Dao) IncrementViews(ctx context.Context, auctionID string) error {
	if err := d.DB.WithContext(ctx).Model(&model.Auction{}).
		Where("id = ?", auctionID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return errors.Wrap(err, "failed on increment auction views")
	}
	return nil
}

// ListAuctions pages the listing. The total count is cached in redis with a
// short TTL to avoid a full count on every page hit.
func (d *Dao) ListAuctions(ctx context.Context, filter *AuctionFilter) ([]model.Auction, int64, error) {
	db := d.DB.WithContext(ctx).Model(&model.Auction{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Team != "" {
		db = db.Where("team = ?", filter.Team)
	}
	if filter.ListingType != "" {
		db = db.Where("listing_type = ?", filter.ListingType)
	}

	switch filter.Sort {
	case "ending_soon":
		db = db.Order("end_time asc")
	case "price_low":
		db = db.Order("current_bid asc")
	case "price_high":
		db = db.Order("current_bid desc")
	case "most_bids":
		db = db.Order("bid_count desc")
	default:
		db = db.Order("created_at desc")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var auctions []model.Auction
	if err := db.Offset(pageSize * (page - 1)).Limit(pageSize).Find(&auctions).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on query auctions")
	}

	total, err := d.countAuctions(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return auctions, total, nil
}

func (d *Dao) countAuctions(ctx context.Context, filter *AuctionFilter) (int64, error) {
	var cacheKey string
	if d.KvStore != nil {
		key, err := getAuctionCountCacheKey(filter)
		if err != nil {
			return 0, err
		}
		cacheKey = key
		if strNum, err := d.KvStore.Get(cacheKey); err == nil && strNum != "" {
			// an unparsable value is a cache miss, not a zero count
			if total, err := strconv.ParseInt(strNum, 10, 64); err == nil {
				return total, nil
			}
		}
	}

	db := d.DB.WithContext(ctx).Model(&model.Auction{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Team != "" {
		db = db.Where("team = ?", filter.Team)
	}
	if filter.ListingType != "" {
		db = db.Where("listing_type = ?", filter.ListingType)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed on count auctions")
	}

	if d.KvStore != nil {
		_ = d.KvStore.Setex(cacheKey, strconv.FormatInt(total, 10), cacheAuctionCountTTL)
	}
	return total, nil
}

func (d *Dao) ListAuctionsBySeller(ctx context.Context, sellerID string) ([]model.Auction, error) {
	var auctions []model.Auction
	if err := d.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		Find(&auctions).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query seller auctions")
	}
	return auctions, nil
}

// ActivateUpcomingAuctions eagerly promotes upcoming auctions whose start
// time has passed. Run by the sweep so list queries converge with the
// time-window checks in the validator.
func (d *Dao) ActivateUpcomingAuctions(ctx context.Context, now time.Time) (int64, error) {
	res := d.DB.WithContext(ctx).Model(&model.Auction{}).
		Where("status = ? and start_time <= ?", model.AuctionStatusUpcoming, now).
		Update("status", model.AuctionStatusActive)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "failed on activate upcoming auctions")
	}
	return res.RowsAffected, nil
}

// CancelAuction moves an auction to cancelled on the seller's behalf. Denied
// once any bid exists, since cancelling a bid-carrying auction would strand
// its bids.
func (d *Dao) CancelAuction(ctx context.Context, auctionID, sellerID string) (*model.Auction, error) {
	var auction model.Auction
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("id = ?", auctionID).
			Take(&auction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrAuctionNotFound
			}
			return errors.Wrap(err, "failed on read auction for update")
		}
		if auction.SellerID != sellerID {
			return errcode.ErrNotAuctionSeller
		}
		if !model.CanTransition(auction.Status, model.AuctionStatusCancelled) {
			return errcode.ErrAuctionNotActive
		}
		if auction.BidCount > 0 {
			return errcode.ErrAuctionHasBids
		}
		if err := tx.Model(&model.Auction{}).
			Where("id = ?", auctionID).
			Update("status", model.AuctionStatusCancelled).Error; err != nil {
			return errors.Wrap(err, "failed on cancel auction")
		}
		auction.Status = model.AuctionStatusCancelled
		return nil
	})
	if err != nil {
		return nil, translateTxError(err, "failed on cancel auction tx")
	}
	return &auction, nil
}
