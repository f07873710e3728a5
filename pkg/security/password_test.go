package security_test

import (
	"strings"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/security"
)

var fastArgon = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerify(t *testing.T) {
	h := security.NewHasher(fastArgon)
	hash, err := h.Hash("very-secure-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, rehash, err := h.Verify("very-secure-password", hash)
	if err != nil || !ok || rehash {
		t.Fatalf("expected match without rehash, got ok=%v rehash=%v err=%v", ok, rehash, err)
	}

	ok, _, err = h.Verify("bogus-password", hash)
	if err != nil {
		t.Fatalf("Verify returned error for wrong password: %v", err)
	}
	if ok {
		t.Fatal("Verify accepted an incorrect password")
	}
}

func TestVerifyFlagsOutdatedParams(t *testing.T) {
	old, err := security.NewHasher(fastArgon).Hash("rotate-me")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	tuned := fastArgon
	tuned.ArgonTime = 2
	ok, rehash, err := security.NewHasher(tuned).Verify("rotate-me", old)
	if err != nil || !ok {
		t.Fatalf("old hash should still verify, ok=%v err=%v", ok, err)
	}
	if !rehash {
		t.Fatal("expected rehash after cost change")
	}
}

func TestHashRejectsEmpty(t *testing.T) {
	if _, err := security.NewHasher(fastArgon).Hash(""); err == nil {
		t.Fatal("expected empty password error")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := security.NewHasher(fastArgon)
	for _, encoded := range []string{
		"not-a-hash",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=16$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
	} {
		if _, _, err := h.Verify("irrelevant", encoded); err == nil {
			t.Fatalf("expected error for %q", encoded)
		}
	}
}

func TestParamsFromConfigClamps(t *testing.T) {
	p := security.ParamsFromConfig(config.PasswordConfig{ArgonMemoryKB: 1, ArgonTime: 99, ArgonParallelism: 0, ArgonSaltLen: 1000, ArgonKeyLen: 0})
	want := security.Params{Memory: 8, Time: 10, Parallelism: 1, SaltLen: 64, KeyLen: 16}
	if p != want {
		t.Fatalf("expected %+v, got %+v", want, p)
	}
}

func TestCheckPasswordPolicy(t *testing.T) {
	for _, pw := range []string{"", "abc", "12345", "      "} {
		if err := security.CheckPasswordPolicy(pw); err == nil {
			t.Fatalf("expected %q to be rejected", pw)
		}
	}
	if err := security.CheckPasswordPolicy("secret1"); err != nil {
		t.Fatalf("expected password to pass, got %v", err)
	}
}
