// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

// A QueryItem is one name/optional-value pair in an endpoint's query
// string. Items are kept in declaration order when the request URL is
// composed, and names and values are percent-encoded at composition
// time.
//
// A nil Value renders as a bare name with no "=" separator ("flag"),
// while a pointer to the empty string renders as "name=".
type QueryItem struct {
	Name  string
	Value *string
}

// Param returns a QueryItem carrying a value.
func Param(name, value string) QueryItem {
	return QueryItem{Name: name, Value: &value}
}

// Flag returns a valueless QueryItem.
func Flag(name string) QueryItem {
	return QueryItem{Name: name}
}
