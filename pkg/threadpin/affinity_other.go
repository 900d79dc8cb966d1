//go:build !linux

package threadpin

// setCPUAffinity is a no-op outside Linux: neither Windows' thread
// affinity mask nor the BSD/Darwin family expose an equivalent portable,
// unfabricated Go API in this stack, so pinning on those platforms is left
// to setPriority alone.
func setCPUAffinity(index int) error {
	return nil
}
