// SPDX-License-Identifier: MIT

package testutil

import (
	"github.com/albertocavalcante/shaclgen/internal/shaclbase"
	"github.com/albertocavalcante/shaclgen/model"
)

// Namespace is the IRI prefix of [SampleModel] definitions.
const Namespace = "http://example.org/"

// SampleModel returns a small model exercising every feature renderers
// handle: an abstract base class, inheritance, an enumeration, required,
// optional and list properties, a self reference and a pattern.
//
//	Color   enum  red, darkBlue
//	Element abstract  name: string [1..1]
//	Person  : Element age: nonNegativeInteger [0..1]
//	                  color: Color [0..1]
//	                  email: string [0..*] pattern
//	                  friend: Person [0..*]
func SampleModel() *model.Model {
	one := 1

	name := &model.Property{IRI: Namespace + "name", Name: "name", Comment: "The name.", Range: shaclbase.TypeString}
	age := &model.Property{IRI: Namespace + "age", Name: "age", Range: shaclbase.TypeNonNegativeInteger}
	color := &model.Property{IRI: Namespace + "color", Name: "color", Range: Namespace + "Color"}
	email := &model.Property{IRI: Namespace + "email", Name: "email", Range: shaclbase.TypeString}
	friend := &model.Property{IRI: Namespace + "friend", Name: "friend", Range: Namespace + "Person"}

	colorEnum := &model.Enum{
		IRI:     Namespace + "Color",
		Name:    "Color",
		Comment: "A color.",
		Values: []*model.EnumValue{
			{IRI: Namespace + "Color/darkBlue", Name: "darkBlue"},
			{IRI: Namespace + "Color/red", Name: "red"},
		},
	}

	element := &model.Class{
		IRI:      Namespace + "Element",
		Name:     "Element",
		Comment:  "Base class.",
		Abstract: true,
		Properties: []*model.PropertyRef{
			{Property: name, Name: "name", Datatype: shaclbase.TypeString, MinCount: 1, MaxCount: &one},
		},
	}

	person := &model.Class{
		IRI:     Namespace + "Person",
		Name:    "Person",
		Parents: []string{element.IRI},
		Properties: []*model.PropertyRef{
			{Property: age, Name: "age", Datatype: shaclbase.TypeNonNegativeInteger, MaxCount: &one},
			{Property: color, Name: "color", Class: colorEnum.IRI, MaxCount: &one},
			{Property: email, Name: "email", Datatype: shaclbase.TypeString, Pattern: "^.+@.+$"},
			{Property: friend, Name: "friend", Class: Namespace + "Person"},
		},
	}

	return model.New(
		[]*model.Class{element, person},
		[]*model.Enum{colorEnum},
		[]*model.Property{age, color, email, friend, name},
	)
}
