package mocks

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"
)

// ContextManager mocks model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func NewContextManager(t testingT) *ContextManager {
	m := &ContextManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ContextManager) SetUserIDToContext(ctx context.Context, userID int64) context.Context {
	args := m.Called(ctx, userID)
	return args.Get(0).(context.Context)
}

func (m *ContextManager) GetUserIDFromContext(ctx context.Context) (int64, bool) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Bool(1)
}

// SecurityLayer mocks model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	args := m.Called(protocol, addr)
	var l net.Listener
	if v := args.Get(0); v != nil {
		l = v.(net.Listener)
	}
	return l, args.Error(1)
}
