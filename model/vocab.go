// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

// Namespaces of the vocabularies understood by the builder.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  = "http://www.w3.org/2002/07/owl#"
	SH   = "http://www.w3.org/ns/shacl#"

	// S2C holds code generation annotations.
	S2C = "https://jpewdev.github.io/shacl2code/schema#"
)

const (
	rdfProperty = RDF + "Property"

	rdfsClass      = RDFS + "Class"
	rdfsComment    = RDFS + "comment"
	rdfsSubClassOf = RDFS + "subClassOf"
	rdfsRange      = RDFS + "range"

	owlClass            = OWL + "Class"
	owlThing            = OWL + "Thing"
	owlObjectProperty   = OWL + "ObjectProperty"
	owlDatatypeProperty = OWL + "DatatypeProperty"
	owlNamedIndividual  = OWL + "NamedIndividual"

	shNodeShape   = SH + "NodeShape"
	shProperty    = SH + "property"
	shPath        = SH + "path"
	shName        = SH + "name"
	shDatatype    = SH + "datatype"
	shClass       = SH + "class"
	shMinCount    = SH + "minCount"
	shMaxCount    = SH + "maxCount"
	shPattern     = SH + "pattern"
	shTargetClass = SH + "targetClass"

	s2cIsAbstract = S2C + "isAbstract"
)
