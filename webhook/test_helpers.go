package webhook

import "github.com/stretchr/testify/mock"

// MatchLog creates a custom matcher for log arguments in mocks
func MatchLog(matcher func(Log) bool) interface{} {
	return mock.MatchedBy(matcher)
}

// MatchStatEvent creates a custom matcher for stat event arguments in mocks
func MatchStatEvent(matcher func(StatEvent) bool) interface{} {
	return mock.MatchedBy(matcher)
}
