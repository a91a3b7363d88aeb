package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// 版本号 key 的存活时间，远大于任何一次回源耗时
const versionTTL = 24 * time.Hour

var errStale = errors.New("cache: key invalidated during load")

type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewWithClient(rdb *redis.Client) *Cache { return &Cache{RDB: rdb} }

func versionKey(key string) string { return key + ":ver" }

// GetOrLoad 先读缓存，未命中时 single flight 合并回源；写缓存失败不影响返回。
// 回源前记下版本号，回源期间 key 被 Delete 过则结果只返回不回写。
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		ver, verErr := c.version(ctx, key)
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if verErr == nil {
			_ = c.setIfVersion(ctx, key, ver, b, ttl)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) version(ctx context.Context, key string) (int64, error) {
	n, err := c.RDB.Get(ctx, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// setIfVersion WATCH 版本号，版本未变才写入
func (c *Cache) setIfVersion(ctx context.Context, key string, ver int64, b []byte, ttl time.Duration) error {
	vk := versionKey(key)
	return c.RDB.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, vk).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != ver {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, b, ttl)
			return nil
		})
		return err
	}, vk)
}

// Delete 失效并递增版本号，让正在回源的旧数据不再回写；调用方决定是否忽略错误
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Del(ctx, k)
			p.Incr(ctx, versionKey(k))
			p.Expire(ctx, versionKey(k), versionTTL)
		}
		return nil
	})
	return err
}

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }
