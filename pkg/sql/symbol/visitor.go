// Copyright 2017 The Crate Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package symbol

import (
	"github.com/cockroachdb/errors"
)

// Visitor processes symbols without type tests at the call site. It has
// one method per variant; adding a variant breaks every implementation
// at compile time. There is no default or fallback method.
type Visitor[C, R any] interface {
	VisitReference(*Reference, C) R
	VisitDynamicReference(*DynamicReference, C) R
	VisitLiteral(*Literal, C) R
	VisitInputColumn(*InputColumn, C) R
}

// Accept dispatches s to the visitor method for its variant.
func Accept[C, R any](s Symbol, v Visitor[C, R], ctx C) R {
	switch t := s.(type) {
	case *Reference:
		return v.VisitReference(t, ctx)
	case *DynamicReference:
		return v.VisitDynamicReference(t, ctx)
	case *Literal:
		return v.VisitLiteral(t, ctx)
	case *InputColumn:
		return v.VisitInputColumn(t, ctx)
	default:
		panic(errors.AssertionFailedf("unhandled symbol kind %v", s.Kind()))
	}
}
