package procon

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const addressSalt = "procon-gadget-link-address"

// Color is an RGB triple as stored in the controller's flash.
type Color [3]byte

var (
	DefaultBodyColor   = Color{0x32, 0x32, 0x32}
	DefaultButtonColor = Color{0xff, 0xff, 0xff}
)

// Identity is fixed for the lifetime of a controller: the link address the
// console pairs with and the colors it draws in its menus.
type Identity struct {
	address [6]byte
	colors  [12]byte
}

// NewIdentity builds an identity. Nil grip colors are reported as black.
func NewIdentity(address [6]byte, body, buttons Color, leftGrip, rightGrip *Color) *Identity {
	id := &Identity{address: address}
	copy(id.colors[0:3], body[:])
	copy(id.colors[3:6], buttons[:])
	if leftGrip != nil {
		copy(id.colors[6:9], leftGrip[:])
	}
	if rightGrip != nil {
		copy(id.colors[9:12], rightGrip[:])
	}
	return id
}

// Address returns the 6-byte link address.
func (id *Identity) Address() [6]byte { return id.address }

// Colors returns body, button, left grip and right grip colors back to back.
func (id *Identity) Colors() [12]byte { return id.colors }

func (id *Identity) colorBytes() []byte {
	c := id.colors
	return c[:]
}

func (id *Identity) String() string {
	a := id.address
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}

// RandomAddress returns a fresh random link address.
func RandomAddress() ([6]byte, error) {
	var a [6]byte
	if _, err := rand.Read(a[:]); err != nil {
		return a, err
	}
	return a, nil
}

// DeriveAddress derives a stable link address from seed, so a console keeps
// recognising the same controller between runs.
func DeriveAddress(seed string) ([6]byte, error) {
	var a [6]byte
	if seed == "" {
		return a, fmt.Errorf("address seed is empty")
	}
	r := hkdf.New(sha256.New, []byte(seed), []byte(addressSalt), nil)
	if _, err := io.ReadFull(r, a[:]); err != nil {
		return a, err
	}
	return a, nil
}

// ParseAddress accepts "aa:bb:cc:dd:ee:ff", "aa-bb-..." or bare hex.
func ParseAddress(s string) ([6]byte, error) {
	var a [6]byte
	b, err := decodeHex(s, ":-")
	if err != nil {
		return a, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(b) != len(a) {
		return a, fmt.Errorf("invalid address %q: want 6 bytes, got %d", s, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// ParseColor accepts "rrggbb" with an optional leading '#'.
func ParseColor(s string) (Color, error) {
	var c Color
	b, err := decodeHex(strings.TrimPrefix(s, "#"), "")
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(b) != len(c) {
		return c, fmt.Errorf("invalid color %q: want 3 bytes, got %d", s, len(b))
	}
	copy(c[:], b)
	return c, nil
}

func decodeHex(s, separators string) ([]byte, error) {
	for _, sep := range separators {
		s = strings.ReplaceAll(s, string(sep), "")
	}
	return hex.DecodeString(strings.TrimSpace(s))
}
