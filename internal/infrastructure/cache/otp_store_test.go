package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newStore(t *testing.T, ttl time.Duration) (*OTPStore, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewOTPStore(rdb, ttl), s
}

func TestOTPStore_PutGetDelete(t *testing.T) {
	st, mr := newStore(t, 5*time.Minute)
	ctx := context.Background()

	if err := st.Put(ctx, "budi", "123456"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ttl := mr.TTL("otp:budi"); ttl != 5*time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}
	got, err := st.Get(ctx, "budi")
	if err != nil || got != "123456" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	// new code overwrites the old one
	_ = st.Put(ctx, "budi", "654321")
	if got, _ := st.Get(ctx, "budi"); got != "654321" {
		t.Fatalf("Get after overwrite = %q", got)
	}

	if err := st.Delete(ctx, "budi"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, "budi"); !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("want ErrOTPNotFound, got %v", err)
	}
}

func TestOTPStore_Expires(t *testing.T) {
	st, mr := newStore(t, time.Minute)
	ctx := context.Background()

	_ = st.Put(ctx, "siti", "111111")
	mr.FastForward(61 * time.Second)

	if _, err := st.Get(ctx, "siti"); !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("want ErrOTPNotFound after expiry, got %v", err)
	}
}

func TestOTPStore_Fail(t *testing.T) {
	st, mr := newStore(t, 5*time.Minute)
	ctx := context.Background()

	_ = st.Put(ctx, "budi", "123456")
	for want := int64(1); want <= 3; want++ {
		n, err := st.Fail(ctx, "budi")
		if err != nil || n != want {
			t.Fatalf("Fail = %d, %v; want %d", n, err, want)
		}
	}
	if ttl := mr.TTL("otp:budi:tries"); ttl != 5*time.Minute {
		t.Fatalf("tries ttl = %v", ttl)
	}

	// a fresh code starts over
	_ = st.Put(ctx, "budi", "654321")
	if mr.Exists("otp:budi:tries") {
		t.Fatal("Put kept the failure count")
	}
	if n, _ := st.Fail(ctx, "budi"); n != 1 {
		t.Fatalf("Fail after Put = %d", n)
	}

	_ = st.Delete(ctx, "budi")
	if mr.Exists("otp:budi") || mr.Exists("otp:budi:tries") {
		t.Fatal("Delete left keys behind")
	}
}
