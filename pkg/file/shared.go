package file

import (
	"github.com/brickingsoft/faio/pkg/aio"
	"github.com/brickingsoft/faio/pkg/reference"
)

// SharedService lets several File handles opened against the same
// aio.Service share ownership of it: each Close decrements a refcount, and
// only the last one actually closes the Service, so an early handle close
// never pulls the backend out from under a sibling handle still in use.
type SharedService struct {
	ptr *reference.Pointer[*aio.Service]
}

// NewSharedService wraps an already-constructed Service for sharing.
func NewSharedService(svc *aio.Service) *SharedService {
	return &SharedService{ptr: reference.Make[*aio.Service](svc)}
}

// Service returns the underlying Service and bumps its refcount.
func (s *SharedService) Service() *aio.Service {
	return s.ptr.Value()
}

// Close releases this handle's share. The Service itself closes once
// every share has.
func (s *SharedService) Close() error {
	return s.ptr.Close()
}
