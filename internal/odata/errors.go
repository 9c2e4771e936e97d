package odata

// ParseError is returned by the lexer, filter compiler, or clause
// parsers when user-supplied query text is rejected. The HTTP surface
// maps it to a 500 with code "ServerError" — see spec §7 for why 500
// (rather than the more natural 400) is preserved.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
