// Package listdef compiles CUE list definitions into schema.List values.
//
// List schemas are authored as CUE documents:
//
//	list: {
//		name: "Books"
//		rating: type: "stars"
//		fields: [
//			{id: "genre", name: "Genre", type: "multi-select", required: true, options: ["Sci-Fi", "Fantasy"]},
//			{id: "read", name: "Read it", type: "yes-no"},
//		]
//	}
//
// The reserved Name field (id "1") is injected by the compiler, never
// declared by the author; declared fields receive orders 1..n in
// declaration order. Compilation errors (malformed CUE, missing
// required attributes) fail fast with a CompileError carrying the CUE
// position. Structural problems with an otherwise well-formed
// definition (duplicate ids, options on a text field) are collected in
// full by Check so an author sees every mistake at once.
package listdef
