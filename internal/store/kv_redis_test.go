package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisKV_SetGetRemove(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	kv, err := OpenRedisKV(ctx, RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get(ctx, KeyDraft); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, KeyDraft, "hello"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, KeyDraft)
	if err != nil || !ok || v != "hello" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}

	// Stored under the default namespace prefix.
	raw, err := mr.Get("quickcap:" + KeyDraft)
	if err != nil || raw != "hello" {
		t.Fatalf("raw key: v=%q err=%v", raw, err)
	}
	if mr.Exists(KeyDraft) {
		t.Fatalf("unprefixed key written")
	}

	if err := kv.Remove(ctx, KeyDraft); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, err := kv.Get(ctx, KeyDraft); err != nil || ok {
		t.Fatalf("after remove: ok=%v err=%v", ok, err)
	}
	if mr.Exists("quickcap:" + KeyDraft) {
		t.Fatalf("key still present after remove")
	}

	// Removing a missing key is not an error.
	if err := kv.Remove(ctx, KeyDraft); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}

func TestRedisKV_CustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	kv, err := OpenKV(ctx, StoreConfig{Backend: "redis", Redis: RedisConfig{Addr: mr.Addr(), Prefix: "alice:"}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()
	if _, ok := kv.(*RedisKV); !ok {
		t.Fatalf("expected redis backend, got %T", kv)
	}

	repo := NewRepository(kv)
	if err := repo.SavePaths(ctx, "/d", "/s"); err != nil {
		t.Fatalf("save paths: %v", err)
	}
	if v, err := mr.Get("alice:" + KeyDailyPath); err != nil || v != "/d" {
		t.Fatalf("prefixed key: v=%q err=%v", v, err)
	}
	daily, standalone, err := repo.Paths(ctx)
	if err != nil || daily != "/d" || standalone != "/s" {
		t.Fatalf("paths: %q %q %v", daily, standalone, err)
	}
}

func TestOpenRedisKV_UnreachableFailsPing(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	kv, err := OpenRedisKV(context.Background(), RedisConfig{Addr: addr})
	if err == nil {
		_ = kv.Close()
		t.Fatalf("expected ping failure")
	}
}
