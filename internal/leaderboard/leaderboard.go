// Package leaderboard keeps the best score per player for the mystery
// mini-game in a Redis sorted set.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/validation"
)

const (
	DefaultKey   = "storefront:mystery:leaderboard"
	DefaultLimit = 10
	MaxLimit     = 100
)

type Entry struct {
	Rank       int64  `json:"rank"`
	PlayerName string `json:"playerName"`
	Score      int64  `json:"score"`
}

// Submission is the body of POST /api/mystery/scores.
type Submission struct {
	PlayerName string `json:"playerName" validate:"required,notblank,max=32"`
	Score      int64  `json:"score" validate:"gte=0,lte=1000000"`
}

type Board struct {
	rdb *redis.Client
	key string
}

// New returns a board stored under key. A nil client yields a board whose
// operations report apperror.ErrUnavailable.
func New(rdb *redis.Client, key string) *Board {
	if key == "" {
		key = DefaultKey
	}
	return &Board{rdb: rdb, key: key}
}

// Submit records s, keeping the player's previous score when it is higher,
// and returns the player's current standing.
func (b *Board) Submit(ctx context.Context, s Submission) (Entry, error) {
	if b.rdb == nil {
		return Entry{}, fmt.Errorf("leaderboard: %w", apperror.ErrUnavailable)
	}
	s.PlayerName = strings.TrimSpace(s.PlayerName)
	if err := validation.Struct(s); err != nil {
		return Entry{}, err
	}
	if err := b.rdb.ZAddGT(ctx, b.key, redis.Z{Score: float64(s.Score), Member: s.PlayerName}).Err(); err != nil {
		return Entry{}, apperror.Upstream("leaderboard.submit", err)
	}
	return b.standing(ctx, s.PlayerName)
}

func (b *Board) standing(ctx context.Context, player string) (Entry, error) {
	pipe := b.rdb.Pipeline()
	rank := pipe.ZRevRank(ctx, b.key, player)
	score := pipe.ZScore(ctx, b.key, player)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return Entry{}, apperror.Upstream("leaderboard.standing", err)
	}
	return Entry{Rank: rank.Val() + 1, PlayerName: player, Score: int64(score.Val())}, nil
}

// Top returns up to limit entries, best first. limit is clamped to
// [1, MaxLimit]; zero means DefaultLimit.
func (b *Board) Top(ctx context.Context, limit int) ([]Entry, error) {
	if b.rdb == nil {
		return nil, fmt.Errorf("leaderboard: %w", apperror.ErrUnavailable)
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}
	zs, err := b.rdb.ZRevRangeWithScores(ctx, b.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, apperror.Upstream("leaderboard.top", err)
	}
	out := make([]Entry, 0, len(zs))
	for i, z := range zs {
		name, _ := z.Member.(string)
		out = append(out, Entry{Rank: int64(i + 1), PlayerName: name, Score: int64(z.Score)})
	}
	return out, nil
}
