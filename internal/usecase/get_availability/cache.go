package get_availability

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/atyusan/blue-card-sub005/internal/domain"
)

// RuleCache LRU-кэш наборов правил расписания по провайдеру.
// lru.Cache потокобезопасен; кэшируется весь набор правил провайдера,
// чтобы запрос диапазона дат не ходил в БД на каждый день недели
type RuleCache struct {
	cache *lru.Cache[int64, []*domain.ProviderScheduleRule]
}

// NewRuleCache создает кэш на size провайдеров
func NewRuleCache(size int) (*RuleCache, error) {
	cache, err := lru.New[int64, []*domain.ProviderScheduleRule](size)
	if err != nil {
		return nil, err
	}
	return &RuleCache{cache: cache}, nil
}

// Get возвращает закэшированные правила провайдера
func (c *RuleCache) Get(providerID int64) ([]*domain.ProviderScheduleRule, bool) {
	return c.cache.Get(providerID)
}

// Store кладёт набор правил провайдера в кэш
func (c *RuleCache) Store(providerID int64, rules []*domain.ProviderScheduleRule) {
	c.cache.Add(providerID, rules)
}

// InvalidateProvider сбрасывает кэш провайдера после изменения правил
func (c *RuleCache) InvalidateProvider(providerID int64) {
	c.cache.Remove(providerID)
}
