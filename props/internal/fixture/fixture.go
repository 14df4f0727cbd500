// Package fixture declares types with deeper embedding chains, used to
// exercise property enumeration.
package fixture

import (
	"bytes"
	"embed"

	"github.com/podhmo/playspec/shape"
)

const ImportPath = "github.com/podhmo/playspec/props/internal/fixture"

//go:embed fixture.go
var Source embed.FS

type Speaker interface {
	Speak() string
}

type Animal struct {
	Name string
	legs int
}

func NewAnimal(name string, legs int) Animal {
	return Animal{Name: name, legs: legs}
}

func (a Animal) Speak() string {
	return "..."
}

func (a *Animal) Legs() int {
	return a.legs
}

type Dog struct {
	Animal
	Breed string
}

func (d Dog) Speak() string {
	return "woof"
}

type Puppy struct {
	*Dog
	Age int
}

// Disc embeds a type from another package.
type Disc struct {
	shape.Circle
	Label string
}

// Buffered embeds a type whose package is never registered.
type Buffered struct {
	bytes.Buffer
	Size int
}

type Loud struct {
	Speaker
	Volume int
}

// Node embeds a pointer to its own type.
type Node struct {
	*Node
	V int
}

// Left and Right embed pointers to each other.
type Left struct {
	*Right
	L int
}

type Right struct {
	*Left
	R int
}

type Shouter interface {
	Speaker
	Shout() string
}

type Crowd struct {
	Shouter
	Size int
}

type Box[T any] struct {
	Item T
}

func (b Box[T]) Get() T {
	return b.Item
}

type Crate struct {
	Box[string]
	Count int
}
