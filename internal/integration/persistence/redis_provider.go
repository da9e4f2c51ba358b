package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
	"github.com/timeflow/backend/internal/integration/persistence/model"
)

// DefaultRedisKeyPrefix namespaces every key written by the Redis provider.
const DefaultRedisKeyPrefix = "timeflow"

// RedisProvider implements adapter.PersistenceProvider on Redis.
//
// Each table uses three kinds of keys:
//
//	<prefix>:<table>:seq       INCR counter for ids
//	<prefix>:<table>:ids       sorted set of ids, scored by id
//	<prefix>:<table>:row:<id>  JSON-encoded model
type RedisProvider struct {
	client      *redis.Client
	categories  *redisTable[*entity.Category, model.CategoryModel]
	timeEntries *redisTable[*entity.TimeEntry, model.TimeEntryModel]
}

// NewRedisProvider creates a provider backed by the given Redis client.
func NewRedisProvider(client *redis.Client, prefix string) *RedisProvider {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisProvider{
		client:      client,
		categories:  &redisTable[*entity.Category, model.CategoryModel]{client: client, prefix: prefix, spec: categorySpec},
		timeEntries: &redisTable[*entity.TimeEntry, model.TimeEntryModel]{client: client, prefix: prefix, spec: timeEntrySpec},
	}
}

// Categories returns the categories table.
func (p *RedisProvider) Categories() adapter.Table[*entity.Category] {
	return p.categories
}

// TimeEntries returns the time entries table.
func (p *RedisProvider) TimeEntries() adapter.Table[*entity.TimeEntry] {
	return p.timeEntries
}

// Ping checks the Redis connection.
func (p *RedisProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (p *RedisProvider) Close() error {
	return p.client.Close()
}

type redisTable[R adapter.Row, M any] struct {
	client *redis.Client
	prefix string
	spec   tableSpec[R, M]
}

func (t *redisTable[R, M]) seqKey() string {
	return t.prefix + ":" + t.spec.name + ":seq"
}

func (t *redisTable[R, M]) idsKey() string {
	return t.prefix + ":" + t.spec.name + ":ids"
}

func (t *redisTable[R, M]) rowKey(id int64) string {
	return t.prefix + ":" + t.spec.name + ":row:" + strconv.FormatInt(id, 10)
}

// NextID increments the table's sequence key.
func (t *redisTable[R, M]) NextID(ctx context.Context) (int64, error) {
	return t.client.Incr(ctx, t.seqKey()).Result()
}

// Select loads every row and filters in process; tables are small.
func (t *redisTable[R, M]) Select(ctx context.Context, query adapter.Query) ([]R, error) {
	rows, err := t.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]R, 0, len(rows))
	for _, row := range rows {
		if matchesAll(row, query.Filters) {
			result = append(result, row)
		}
	}
	return applyLimit(result, query.Limit), nil
}

// load returns all rows of the table in id order.
func (t *redisTable[R, M]) load(ctx context.Context) ([]R, error) {
	members, err := t.client.ZRange(ctx, t.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []R{}, nil
	}

	keys := make([]string, len(members))
	for i, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: corrupt id %q: %w", t.spec.name, member, err)
		}
		keys[i] = t.rowKey(id)
	}

	values, err := t.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]R, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Index entry without a row; skipped until the next delete cleans it up.
			continue
		}
		var m M
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("%s: decode %s: %w", t.spec.name, keys[i], err)
		}
		rows = append(rows, t.spec.toEntity(&m))
	}
	return rows, nil
}

// Insert stores a new row, failing if the id is taken.
func (t *redisTable[R, M]) Insert(ctx context.Context, row R) (R, error) {
	var zero R
	m := t.spec.toModel(row)
	data, err := json.Marshal(m)
	if err != nil {
		return zero, fmt.Errorf("%s: encode row: %w", t.spec.name, err)
	}

	id := row.PrimaryKey()
	created, err := t.client.SetNX(ctx, t.rowKey(id), data, 0).Result()
	if err != nil {
		return zero, err
	}
	if !created {
		return zero, fmt.Errorf("%s: duplicate primary key %d", t.spec.name, id)
	}

	member := redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)}
	if err := t.client.ZAdd(ctx, t.idsKey(), member).Err(); err != nil {
		return zero, err
	}
	return t.spec.toEntity(m), nil
}

// Update overwrites an existing row.
func (t *redisTable[R, M]) Update(ctx context.Context, row R) (R, error) {
	var zero R
	m := t.spec.toModel(row)
	data, err := json.Marshal(m)
	if err != nil {
		return zero, fmt.Errorf("%s: encode row: %w", t.spec.name, err)
	}

	updated, err := t.client.SetXX(ctx, t.rowKey(row.PrimaryKey()), data, 0).Result()
	if err != nil {
		return zero, err
	}
	if !updated {
		return zero, adapter.ErrNoRows
	}
	return t.spec.toEntity(m), nil
}

// Delete removes every row matching all filters.
func (t *redisTable[R, M]) Delete(ctx context.Context, filters ...adapter.Filter) ([]R, error) {
	if len(filters) == 0 {
		return nil, adapter.ErrMissingFilter
	}

	matched, err := t.Select(ctx, adapter.Query{Filters: filters})
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return matched, nil
	}

	_, err = t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, row := range matched {
			id := row.PrimaryKey()
			pipe.Del(ctx, t.rowKey(id))
			pipe.ZRem(ctx, t.idsKey(), strconv.FormatInt(id, 10))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matched, nil
}
