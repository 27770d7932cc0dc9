package statistics

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/internal/pkg/cache"
	"github.com/socialhubhq/socialhub/internal/pkg/database"
)

const (
	CacheKeyReactionsTotal = "statistics:reactions:total"
	CacheKeyCommentsTotal  = "statistics:comments:total"
	CacheKeyOrdersTotal    = "statistics:orders:total"
	CacheKeyEventsDaily    = "statistics:events:daily:%s" // Format with date YYYY-MM-DD
	CacheExpiration        = 30 * time.Minute
)

// StatisticsData carries the headline totals for the dashboard landing page.
type StatisticsData struct {
	TotalReactions int
	TotalComments  int
	TotalOrders    int
	TodayEvents    int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached totals are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached totals when the refresh interval
// has elapsed.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Errorf("[Statistics] Failed to refresh statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recounts the engagement tables and stores the totals
// in Redis.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalReactions int64
	if err := db.Model(&models.Reaction{}).Count(&totalReactions).Error; err != nil {
		return err
	}

	var totalComments int64
	if err := db.Model(&models.Comment{}).Count(&totalComments).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	var todayReactions, todayComments int64
	if err := db.Model(&models.Reaction{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayReactions).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Comment{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayComments).Error; err != nil {
		return err
	}

	if err := cache.Set(CacheKeyReactionsTotal, strconv.FormatInt(totalReactions, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyCommentsTotal, strconv.FormatInt(totalComments, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyOrdersTotal, strconv.FormatInt(totalOrders, 10), CacheExpiration); err != nil {
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyEventsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayReactions+todayComments, 10), CacheExpiration); err != nil {
		return err
	}

	log.Debugf("[Statistics] Cache refreshed: reactions=%d comments=%d orders=%d today=%d",
		totalReactions, totalComments, totalOrders, todayReactions+todayComments)

	return nil
}

// cachedCount reads a counter from the cache, falling back to a live count
// of the given model on a miss.
func cachedCount(key string, model interface{}) int {
	val, err := cache.Get(key)
	if err != nil {
		var count int64
		if err := database.GetDB().Model(model).Count(&count).Error; err != nil {
			log.Errorf("[Statistics] Fallback count failed for %s: %v", key, err)
			return 0
		}
		if err := cache.Set(key, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Errorf("[Statistics] Failed to cache %s: %v", key, err)
		}
		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

// GetTotalReactions returns the reaction count from cache or database.
func GetTotalReactions() int {
	return cachedCount(CacheKeyReactionsTotal, &models.Reaction{})
}

// GetTotalComments returns the comment count from cache or database.
func GetTotalComments() int {
	return cachedCount(CacheKeyCommentsTotal, &models.Comment{})
}

// GetTotalOrders returns the order count from cache or database.
func GetTotalOrders() int {
	return cachedCount(CacheKeyOrdersTotal, &models.Order{})
}

// GetTodayEvents returns today's reaction plus comment count from cache,
// recounting on a miss.
func GetTodayEvents() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyEventsDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		db := database.GetDB()
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		var reactions, comments int64
		if err := db.Model(&models.Reaction{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&reactions).Error; err != nil {
			log.Errorf("[Statistics] Failed to count today's reactions: %v", err)
			return 0
		}
		if err := db.Model(&models.Comment{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&comments).Error; err != nil {
			log.Errorf("[Statistics] Failed to count today's comments: %v", err)
			return 0
		}

		total := reactions + comments
		if err := cache.Set(dailyKey, strconv.FormatInt(total, 10), CacheExpiration); err != nil {
			log.Errorf("[Statistics] Failed to cache today's events: %v", err)
		}
		return int(total)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

// GetStatisticsData refreshes the cache when stale and returns all headline
// totals.
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TotalReactions: GetTotalReactions(),
		TotalComments:  GetTotalComments(),
		TotalOrders:    GetTotalOrders(),
		TodayEvents:    GetTodayEvents(),
	}
}
