package layers_test

import "reflect"

// Grandparent ⊂ Parent ⊂ Child, expressed through embedding.
type Grandparent struct{ Label string }

type Parent struct{ Grandparent }

type Child struct{ Parent }

func (c *Child) Speak() string { return "child:" + c.Label }

type Speaker interface{ Speak() string }

func newChild(label string) *Child {
	return &Child{Parent{Grandparent{Label: label}}}
}

func newParent(label string) *Parent {
	return &Parent{Grandparent{Label: label}}
}

var (
	childType       = reflect.TypeFor[*Child]()
	parentType      = reflect.TypeFor[*Parent]()
	grandparentType = reflect.TypeFor[*Grandparent]()
)

func reflectTypeOf[T any]() reflect.Type { return reflect.TypeFor[T]() }

func reflectTypeOfSpeaker() reflect.Type { return reflect.TypeFor[Speaker]() }
