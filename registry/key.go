package registry

import (
	"fmt"

	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
)

// Keyable is the capability bundle a key's identity type must satisfy:
// comparable gets equality and hashability for free (map indexing), and
// fmt's default formatting gives a printable rendering for diagnostics
// (through String() when the type implements fmt.Stringer), so plain
// strings work as keys. Serialization isn't modeled separately: every
// caller lives in the same process as the registry, so a key never needs
// to cross a wire.
type Keyable interface {
	comparable
}

// Kind distinguishes a globally-unique Alias key from a per-process
// Property key.
type Kind int

const (
	Alias Kind = iota
	Property
)

func (k Kind) String() string {
	if k == Property {
		return "property"
	}
	return "alias"
}

// Key is the identity + kind + optional owning scope a client registers,
// looks up, or subscribes to.
type Key[K Keyable] struct {
	Identity K
	Kind     Kind
	// Scope names the owner at registration/unregistration time; nil on
	// pure lookups.
	Scope *actor.PID
}

// NewAliasKey builds an Alias key scoped to owner (nil for a pure lookup).
func NewAliasKey[K Keyable](identity K, owner *actor.PID) Key[K] {
	return Key[K]{Identity: identity, Kind: Alias, Scope: owner}
}

// NewPropertyKey builds a Property key scoped to owner.
func NewPropertyKey[K Keyable](identity K, owner *actor.PID) Key[K] {
	return Key[K]{Identity: identity, Kind: Property, Scope: owner}
}

func (k Key[K]) String() string {
	if k.Scope == nil {
		return fmt.Sprintf("%s:%v", k.Kind, k.Identity)
	}
	return fmt.Sprintf("%s:%v@%s", k.Kind, k.Identity, k.Scope.ID())
}
