// Package mocks holds gomock doubles of the reactor contracts, used to
// inject primitive failures in tests.
package mocks

//go:generate mockgen -destination=mock_reactor.go -package=mocks github.com/momentics/hioload-event/api Reactor,EventHandle,BufferHandle
