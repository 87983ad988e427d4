// Package widgets provides the primitive markup widgets that bound
// components render into: Text, Tag, and Fragment.
//
// Widgets are plain struct literals:
//
//	Tag{Name: "span", Props: core.Props{"children": "Hello"}}
//
// A Tag is the rendering of a plain target. Its Props carry only data
// attributes; behaviour-carrying values such as setters are never attached
// to a Tag by the hooked package.
package widgets
