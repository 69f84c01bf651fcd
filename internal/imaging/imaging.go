// Package imaging normalizes uploaded images before they hit the blob store.
package imaging

import (
	"github.com/h2non/bimg"
)

type Processor interface {
	// Normalize returns the bytes to store for an upload. Implementations
	// must hand back the input unchanged when they cannot improve on it.
	Normalize(data []byte) ([]byte, error)
}

// VipsProcessor downscales images wider than MaxWidth. Game tiles render
// small, so originals past that width only waste bucket space.
type VipsProcessor struct {
	MaxWidth int
}

func (p *VipsProcessor) Normalize(data []byte) ([]byte, error) {
	img := bimg.NewImage(data)
	size, err := img.Size()
	if err != nil {
		// Not an image bimg understands; store as uploaded.
		return data, nil
	}
	if p.MaxWidth <= 0 || size.Width <= p.MaxWidth {
		return data, nil
	}
	resized, err := img.Process(bimg.Options{Width: p.MaxWidth})
	if err != nil {
		return nil, err
	}
	return resized, nil
}

// Passthrough stores uploads verbatim. Used by tests and deployments
// without libvips.
type Passthrough struct{}

func (Passthrough) Normalize(data []byte) ([]byte, error) {
	return data, nil
}
