package platform

import "time"

func newIdleProvider() IdleProvider {
	return IdleProviderFunc(func() (time.Duration, error) {
		return 0, ErrIdleUnsupported
	})
}
