package wgpurender

// releaser is any wgpu handle.
type releaser interface {
	Release()
}

// releaseStack collects handles as they are created and releases them in
// reverse order.
type releaseStack []releaser

func (s *releaseStack) push(r releaser) {
	*s = append(*s, r)
}

func (s *releaseStack) release() {
	for i := len(*s) - 1; i >= 0; i-- {
		(*s)[i].Release()
	}
	*s = nil
}

// keep hands ownership to the caller; a later release is a no-op.
func (s *releaseStack) keep() {
	*s = nil
}
