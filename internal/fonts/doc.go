// Package fonts resolves watermark fonts through an ordered chain of
// candidate sources: an explicit file path, well-known system font
// locations, and finally the Go Regular font embedded in the binary.
// The first source that loads wins; the parsed font is cached by the
// resolver and faces are built per requested size.
package fonts
