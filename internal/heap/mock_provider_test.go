// Hand-written mock in mockgen's layout.
// Mocks: internal/heap/provider.go (interfaces: provider)

package heap

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockProvider is a mock of the provider interface, hand-maintained in the
// shape mockgen would emit for an unexported same-package interface (the
// reflect-based generator cannot cross package boundaries for unexported
// methods, so this lives beside the code it mocks rather than under a
// generated mocks/ tree).
type MockProvider struct {
	ctrl     *gomock.Controller
	recorder *MockProviderMockRecorder
}

// MockProviderMockRecorder is the mock recorder for MockProvider.
type MockProviderMockRecorder struct {
	mock *MockProvider
}

// NewMockProvider creates a new mock instance.
func NewMockProvider(ctrl *gomock.Controller) *MockProvider {
	mock := &MockProvider{ctrl: ctrl}
	mock.recorder = &MockProviderMockRecorder{mock}

	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockProvider) EXPECT() *MockProviderMockRecorder {
	return m.recorder
}

// grow mocks base method.
func (m *MockProvider) grow(minBytes uintptr) (*block, error) {
	m.ctrl.T.Helper()

	ret := m.ctrl.Call(m, "grow", minBytes)
	ret0, _ := ret[0].(*block)
	ret1, _ := ret[1].(error)

	return ret0, ret1
}

// grow indicates an expected call of grow.
func (mr *MockProviderMockRecorder) grow(minBytes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "grow", reflect.TypeOf((*MockProvider)(nil).grow), minBytes)
}

// pageSize mocks base method.
func (m *MockProvider) pageSize() uintptr {
	m.ctrl.T.Helper()

	ret := m.ctrl.Call(m, "pageSize")
	ret0, _ := ret[0].(uintptr)

	return ret0
}

// pageSize indicates an expected call of pageSize.
func (mr *MockProviderMockRecorder) pageSize() *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "pageSize", reflect.TypeOf((*MockProvider)(nil).pageSize))
}
