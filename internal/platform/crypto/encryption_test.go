package crypto

import (
	"strings"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	sealer, err := New(DeriveKey("secret"))
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}
	sealed, err := sealer.Seal("YWRtaW5AaHJtcy5jb206YWRtaW4xMjM=")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if strings.Contains(sealed, "YWRtaW4") {
		t.Fatal("sealed value leaks plaintext")
	}
	plain, err := sealer.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if plain != "YWRtaW5AaHJtcy5jb206YWRtaW4xMjM=" {
		t.Fatalf("unexpected plaintext %q", plain)
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	sealer, _ := New(DeriveKey("secret"))
	other, _ := New(DeriveKey("other"))
	sealed, _ := sealer.Seal("value")

	if _, err := other.Open(sealed); err == nil {
		t.Fatal("expected wrong key to fail")
	}
	if _, err := sealer.Open("%%%"); err == nil {
		t.Fatal("expected malformed input to fail")
	}
	if _, err := sealer.Open(""); err == nil {
		t.Fatal("expected empty input to fail")
	}
}

func TestNewRejectsShortKey(t *testing.T) {
	if _, err := New("short"); err == nil {
		t.Fatal("expected error for short key")
	}
	if _, err := New(strings.Repeat("k", 32)); err != nil {
		t.Fatalf("raw 32 byte key should work: %v", err)
	}
}
