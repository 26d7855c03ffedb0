// Package mocks holds testify mocks for the interfaces in model and the
// service interfaces consumed by the HTTP layer.
package mocks

import "github.com/stretchr/testify/mock"

type testingT interface {
	mock.TestingT
	Cleanup(func())
}
