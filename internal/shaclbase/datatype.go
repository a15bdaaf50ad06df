// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package shaclbase provides shared XSD datatype classification and name
// transformation utilities used by all renderers.
package shaclbase

// XSD is the XML Schema datatypes namespace.
const XSD = "http://www.w3.org/2001/XMLSchema#"

// XSD datatype IRIs recognized by the renderers.
const (
	TypeString             = XSD + "string"
	TypeAnyURI             = XSD + "anyURI"
	TypeInteger            = XSD + "integer"
	TypeInt                = XSD + "int"
	TypeLong               = XSD + "long"
	TypeNonNegativeInteger = XSD + "nonNegativeInteger"
	TypePositiveInteger    = XSD + "positiveInteger"
	TypeDecimal            = XSD + "decimal"
	TypeDouble             = XSD + "double"
	TypeFloat              = XSD + "float"
	TypeBoolean            = XSD + "boolean"
	TypeDateTime           = XSD + "dateTime"
	TypeDateTimeStamp      = XSD + "dateTimeStamp"
)

// Kind is the coarse category of a datatype across target languages.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindNumber
	KindBoolean
	KindDateTime
)

// Classify returns the kind of an XSD datatype IRI.
// Unknown datatypes are treated as strings.
func Classify(datatype string) Kind {
	switch datatype {
	case TypeInteger, TypeInt, TypeLong, TypeNonNegativeInteger, TypePositiveInteger:
		return KindInteger
	case TypeDecimal, TypeDouble, TypeFloat:
		return KindNumber
	case TypeBoolean:
		return KindBoolean
	case TypeDateTime, TypeDateTimeStamp:
		return KindDateTime
	}
	return KindString
}

// IsNumeric reports whether the datatype maps to a number in most targets.
func IsNumeric(datatype string) bool {
	k := Classify(datatype)
	return k == KindInteger || k == KindNumber
}

// MinInclusive returns the implied lower bound of integer datatypes that
// have one.
func MinInclusive(datatype string) (int, bool) {
	switch datatype {
	case TypeNonNegativeInteger:
		return 0, true
	case TypePositiveInteger:
		return 1, true
	}
	return 0, false
}
