//go:build integration

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vkyc/internal/verification/models"
	"vkyc/pkg/platform/sentinel"
	"vkyc/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
	ctx   context.Context
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.ctx = context.Background()
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.store = NewRedis(s.redis.Client, time.Hour)
}

func (s *RedisStoreSuite) TestRoundTrip() {
	sess := newSession("KYC-1")
	sess.Steps[0].Evidence = models.Evidence(`{"score":91}`)
	s.Require().NoError(s.store.Create(s.ctx, sess))

	found, err := s.store.FindByID(s.ctx, "KYC-1")
	s.Require().NoError(err)
	s.Equal(sess.ID, found.ID)
	s.JSONEq(`{"score":91}`, string(found.Steps[0].Evidence))

	ttl, err := s.redis.Client.TTL(s.ctx, sessionKey("KYC-1")).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisStoreSuite) TestDuplicateCreate() {
	s.Require().NoError(s.store.Create(s.ctx, newSession("KYC-1")))
	s.ErrorIs(s.store.Create(s.ctx, newSession("KYC-1")), sentinel.ErrAlreadyUsed)
}

func (s *RedisStoreSuite) TestVersionedUpdate() {
	sess := newSession("KYC-2")
	s.Require().NoError(s.store.Create(s.ctx, sess))

	next := sess.Clone()
	next.Notes = "first"
	next.Version = 2
	s.Require().NoError(s.store.Update(s.ctx, next, 1))

	stale := sess.Clone()
	stale.Version = 2
	s.ErrorIs(s.store.Update(s.ctx, stale, 1), sentinel.ErrConflict)

	found, err := s.store.FindByID(s.ctx, "KYC-2")
	s.Require().NoError(err)
	s.Equal("first", found.Notes)

	ttl, err := s.redis.Client.TTL(s.ctx, sessionKey("KYC-2")).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0), "update keeps the expiry")
}

func (s *RedisStoreSuite) TestMissing() {
	_, err := s.store.FindByID(s.ctx, "nope")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Update(s.ctx, newSession("nope"), 1), sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, "nope"), sentinel.ErrNotFound)
}
