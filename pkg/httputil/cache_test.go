package httputil

import (
	"errors"
	"testing"
	"time"
)

func TestCacheGetSet(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	body := []byte{0x89, 'P', 'N', 'G'}
	if err := c.Set("https://example.com/me.png", body); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var got []byte
	ok, err := c.Get("https://example.com/me.png", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want hit", ok, err)
	}
	if string(got) != string(body) {
		t.Errorf("Get() = %v, want %v", got, body)
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	var got []byte
	ok, err := c.Get("missing", &got)
	if ok || err != nil {
		t.Errorf("Get(missing) = %v, %v; want miss", ok, err)
	}
}

func TestCacheExpiration(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 10*time.Millisecond)
	if err := c.Set("key", "value"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	var v string
	ok, err := c.Get("key", &v)
	if ok || !errors.Is(err, ErrExpired) {
		t.Errorf("Get() = %v, %v; want ErrExpired", ok, err)
	}
}

func TestCacheNamespace(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 0)
	photos := c.Namespace("photo:")
	if err := photos.Set("a", "one"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("a", "two"); err != nil {
		t.Fatal(err)
	}

	var v string
	if ok, _ := photos.Get("a", &v); !ok || v != "one" {
		t.Errorf("photos.Get(a) = %v, %q", ok, v)
	}
	if ok, _ := c.Get("photo:a", &v); !ok || v != "one" {
		t.Errorf("prefix not applied: %v, %q", ok, v)
	}
	if photos.Dir() != c.Dir() || photos.TTL() != c.TTL() {
		t.Error("namespace changed dir or ttl")
	}
}
