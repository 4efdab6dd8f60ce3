package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPNotFound is returned when no live code exists for the user.
var ErrOTPNotFound = errors.New("otp not found or expired")

type OTPStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOTPStore(rdb *redis.Client, ttl time.Duration) *OTPStore {
	return &OTPStore{rdb: rdb, ttl: ttl}
}

func otpKey(username string) string   { return "otp:" + username }
func triesKey(username string) string { return "otp:" + username + ":tries" }

// Put replaces any pending code for username and clears its failure count.
func (s *OTPStore) Put(ctx context.Context, username, code string) error {
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, otpKey(username), code, s.ttl)
		p.Del(ctx, triesKey(username))
		return nil
	})
	return err
}

func (s *OTPStore) Get(ctx context.Context, username string) (string, error) {
	v, err := s.rdb.Get(ctx, otpKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	return v, err
}

func (s *OTPStore) Delete(ctx context.Context, username string) error {
	return s.rdb.Del(ctx, otpKey(username), triesKey(username)).Err()
}

// Fail bumps the wrong-guess counter. The counter lives no longer than a
// code does.
func (s *OTPStore) Fail(ctx context.Context, username string) (int64, error) {
	var incr *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, triesKey(username))
		p.Expire(ctx, triesKey(username), s.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
