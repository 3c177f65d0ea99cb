package api

import (
	"github.com/stretchr/testify/mock"
	"github.com/vrsandeep/xkcd-go/xkcd"
)

// MockFetcher is a mock implementation of ComicFetcher.
type MockFetcher struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockFetcher) Get(number uint32) (*xkcd.Comic, error) {
	args := m.Called(number)
	comic, _ := args.Get(0).(*xkcd.Comic)
	return comic, args.Error(1)
}

// Latest mocks the Latest method
func (m *MockFetcher) Latest() (*xkcd.Comic, error) {
	args := m.Called()
	comic, _ := args.Get(0).(*xkcd.Comic)
	return comic, args.Error(1)
}

// Image mocks the Image method
func (m *MockFetcher) Image(comic *xkcd.Comic) ([]byte, error) {
	args := m.Called(comic)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
