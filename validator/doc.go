/*
Package validator validates configuration structs through 'validate' struct tags.
It is built on https://github.com/rgalanakis/validator,
though it does not expose it.

Besides the built-in len, max, min, nonzero and regexp validators,
these are available:

	enum
		For string types, validate that the string is one of the specified choices.
		Choices should be pipe-delimited. Matching is case-insensitive.
		If "|opt" is the trailing argument, an empty string is valid.
		(Usage: enum=json|text enum=json|text|opt)

	cenum
		Same as enum, but comparison is case-sensitive.

	attrname
		For string types, validate that the string can be used as an HTML
		attribute name or prefix: lower-case letters and digits,
		in hyphen-separated words, starting with a letter.
		(Usage: attrname attrname=opt)

	cssclass
		For string types, validate that the string is a single CSS class name.
		(Usage: cssclass cssclass=opt)

Nil pointers are considered valid; use nonzero if they are not.
*/
package validator
